package domain

import (
	"github.com/bwmarrin/snowflake"
)

// Bucket is the credit-ledger grouping granularity.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
	BucketYear  Bucket = "year"
)

// LaborRow is one laborer's payroll summary for the window. Pay is
// computed from the salary rate; overtime uses each timesheet's stored
// multiplier.
type LaborRow struct {
	LaborerID     snowflake.ID `json:"laborer_id"`
	LaborerName   string       `json:"laborer_name"`
	Entries       int          `json:"entries"`
	RegularHours  float64      `json:"regular_hours"`
	OvertimeHours float64      `json:"overtime_hours"`
	RegularPay    float64      `json:"regular_pay"`
	OvertimePay   float64      `json:"overtime_pay"`
	TotalPay      float64      `json:"total_pay"`

	// MultiplierLabel is the literal multiplier when every overtime row
	// in range used the same one, a "min-max x" range otherwise, empty
	// with no overtime.
	MultiplierLabel string `json:"multiplier_label,omitempty"`
}

// ClientRow is one laborer's revenue summary: charge from the org rate,
// cost from the salary rate, profit the difference.
type ClientRow struct {
	LaborerID     snowflake.ID `json:"laborer_id"`
	LaborerName   string       `json:"laborer_name"`
	Entries       int          `json:"entries"`
	RegularHours  float64      `json:"regular_hours"`
	OvertimeHours float64      `json:"overtime_hours"`
	Charge        float64      `json:"charge"`
	Cost          float64      `json:"cost"`
	Profit        float64      `json:"profit"`
}

type ExpenseRow struct {
	CategoryID   snowflake.ID `json:"category_id"`
	CategoryName string       `json:"category_name"`
	Entries      int          `json:"entries"`
	Amount       float64      `json:"amount"`
}

type ProfitLossReport struct {
	Revenue          float64      `json:"revenue"`
	LaborCost        float64      `json:"labor_cost"`
	GrossProfit      float64      `json:"gross_profit"`
	TotalExpenses    float64      `json:"total_expenses"`
	NetProfit        float64      `json:"net_profit"`
	GrossMarginPct   float64      `json:"gross_margin_pct"`
	NetMarginPct     float64      `json:"net_margin_pct"`
	ExpenseBreakdown []ExpenseRow `json:"expense_breakdown"`
}

// LedgerRow is one period bucket of the credit ledger. RunningBalance is
// the cumulative net flow carried across buckets in ascending period
// order.
type LedgerRow struct {
	Period         string  `json:"period"`
	Entries        int     `json:"entries"`
	Deposits       float64 `json:"deposits"`
	Withdrawals    float64 `json:"withdrawals"`
	Advances       float64 `json:"advances"`
	NetFlow        float64 `json:"net_flow"`
	RunningBalance float64 `json:"running_balance"`
}
