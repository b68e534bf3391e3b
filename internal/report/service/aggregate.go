package service

import (
	"fmt"
	"math"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/billing/aggregate"
	creditdomain "github.com/smallbiznis/crewbill/internal/credit/domain"
	expensedomain "github.com/smallbiznis/crewbill/internal/expense/domain"
	reportdomain "github.com/smallbiznis/crewbill/internal/report/domain"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
)

// fallbackMultiplier prices overtime rows whose multiplier is absent when
// averaging across mixed rows. Stored rows always carry their own value;
// this only guards legacy data.
const fallbackMultiplier = 1.5

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

type laborAcc struct {
	entries       int
	regularHours  float64
	overtimeHours float64
	regularPay    float64
	overtimePay   float64
	charge        float64
	cost          float64
	multipliers   map[float64]struct{}
}

func foldByLaborer(timesheets []timesheetdomain.Timesheet) map[snowflake.ID]laborAcc {
	return aggregate.Fold(timesheets,
		func(t timesheetdomain.Timesheet) snowflake.ID { return t.LaborerID },
		func(snowflake.ID) laborAcc {
			return laborAcc{multipliers: make(map[float64]struct{})}
		},
		func(acc laborAcc, t timesheetdomain.Timesheet) laborAcc {
			multiplier := t.Multiplier.Or(fallbackMultiplier)
			acc.entries++
			acc.regularHours += t.RegularHours
			acc.overtimeHours += t.OvertimeHours
			acc.regularPay += t.RegularHours * t.SalaryRate
			acc.overtimePay += t.OvertimeHours * t.SalaryRate * multiplier
			acc.charge += t.RegularHours*t.OrgRate + t.OvertimeHours*t.OrgRate*multiplier
			acc.cost += t.RegularHours*t.SalaryRate + t.OvertimeHours*t.SalaryRate*multiplier
			if t.Multiplier.IsSet() {
				if value, ok := t.Multiplier.Float(); ok {
					acc.multipliers[value] = struct{}{}
				}
			}
			return acc
		},
	)
}

func multiplierLabel(multipliers map[float64]struct{}) string {
	if len(multipliers) == 0 {
		return ""
	}

	min, max := math.Inf(1), math.Inf(-1)
	for value := range multipliers {
		if value < min {
			min = value
		}
		if value > max {
			max = value
		}
	}
	if min == max {
		return fmt.Sprintf("%gx", min)
	}
	return fmt.Sprintf("%gx-%gx", min, max)
}

func laborRows(timesheets []timesheetdomain.Timesheet, names map[snowflake.ID]string) []reportdomain.LaborRow {
	groups := foldByLaborer(timesheets)

	rows := make([]reportdomain.LaborRow, 0, len(groups))
	for _, laborerID := range aggregate.SortedKeys(groups) {
		group := groups[laborerID]
		rows = append(rows, reportdomain.LaborRow{
			LaborerID:       laborerID,
			LaborerName:     names[laborerID],
			Entries:         group.entries,
			RegularHours:    group.regularHours,
			OvertimeHours:   group.overtimeHours,
			RegularPay:      round2(group.regularPay),
			OvertimePay:     round2(group.overtimePay),
			TotalPay:        round2(group.regularPay + group.overtimePay),
			MultiplierLabel: multiplierLabel(group.multipliers),
		})
	}
	return rows
}

func clientRows(timesheets []timesheetdomain.Timesheet, names map[snowflake.ID]string) []reportdomain.ClientRow {
	groups := foldByLaborer(timesheets)

	rows := make([]reportdomain.ClientRow, 0, len(groups))
	for _, laborerID := range aggregate.SortedKeys(groups) {
		group := groups[laborerID]
		rows = append(rows, reportdomain.ClientRow{
			LaborerID:     laborerID,
			LaborerName:   names[laborerID],
			Entries:       group.entries,
			RegularHours:  group.regularHours,
			OvertimeHours: group.overtimeHours,
			Charge:        round2(group.charge),
			Cost:          round2(group.cost),
			Profit:        round2(group.charge - group.cost),
		})
	}
	return rows
}

func expenseRows(expenses []expensedomain.Expense, names map[snowflake.ID]string) ([]reportdomain.ExpenseRow, float64) {
	type expenseAcc struct {
		entries int
		amount  float64
	}
	groups := aggregate.Fold(expenses,
		func(e expensedomain.Expense) snowflake.ID { return e.CategoryID },
		func(snowflake.ID) expenseAcc { return expenseAcc{} },
		func(acc expenseAcc, e expensedomain.Expense) expenseAcc {
			acc.entries++
			acc.amount += e.Amount
			return acc
		},
	)

	rows := make([]reportdomain.ExpenseRow, 0, len(groups))
	var total float64
	for _, categoryID := range aggregate.SortedKeys(groups) {
		group := groups[categoryID]
		total += group.amount
		rows = append(rows, reportdomain.ExpenseRow{
			CategoryID:   categoryID,
			CategoryName: names[categoryID],
			Entries:      group.entries,
			Amount:       round2(group.amount),
		})
	}
	return rows, round2(total)
}

// profitLoss combines labor revenue and cost with the expense breakdown.
// Margins are zero when revenue is zero, never a division fault.
func profitLoss(timesheets []timesheetdomain.Timesheet, expenses []expensedomain.Expense, categoryNames map[snowflake.ID]string) reportdomain.ProfitLossReport {
	var revenue, laborCost float64
	for _, group := range foldByLaborer(timesheets) {
		revenue += group.charge
		laborCost += group.cost
	}

	breakdown, totalExpenses := expenseRows(expenses, categoryNames)

	revenue = round2(revenue)
	laborCost = round2(laborCost)
	grossProfit := round2(revenue - laborCost)
	netProfit := round2(grossProfit - totalExpenses)

	report := reportdomain.ProfitLossReport{
		Revenue:          revenue,
		LaborCost:        laborCost,
		GrossProfit:      grossProfit,
		TotalExpenses:    totalExpenses,
		NetProfit:        netProfit,
		ExpenseBreakdown: breakdown,
	}
	if revenue != 0 {
		report.GrossMarginPct = round2(grossProfit / revenue * 100)
		report.NetMarginPct = round2(netProfit / revenue * 100)
	}
	return report
}

// bucketKey renders a credit's period key in the business time zone.
// String ordering of every key format matches chronological ordering, so
// sorted keys are already period-ascending.
func bucketKey(date time.Time, bucket reportdomain.Bucket, loc *time.Location) string {
	local := date.In(loc)
	switch bucket {
	case reportdomain.BucketDay:
		return local.Format("2006-01-02")
	case reportdomain.BucketWeek:
		// Weeks start on the record's local Sunday.
		start := local.AddDate(0, 0, -int(local.Weekday()))
		return start.Format("2006-01-02")
	case reportdomain.BucketMonth:
		return local.Format("2006-01")
	default:
		return local.Format("2006")
	}
}

type ledgerAcc struct {
	entries     int
	deposits    float64
	withdrawals float64
	advances    float64
}

// creditLedger buckets credits by period and folds the running balance
// across buckets in ascending period order. Input order is irrelevant:
// per-bucket sums are commutative and the carry runs over sorted keys.
func creditLedger(credits []creditdomain.Credit, bucket reportdomain.Bucket, loc *time.Location) []reportdomain.LedgerRow {
	groups := aggregate.Fold(credits,
		func(c creditdomain.Credit) string { return bucketKey(c.Date, bucket, loc) },
		func(string) ledgerAcc { return ledgerAcc{} },
		func(acc ledgerAcc, c creditdomain.Credit) ledgerAcc {
			acc.entries++
			switch c.Type {
			case creditdomain.TypeDeposit:
				acc.deposits += c.Amount
			case creditdomain.TypeWithdrawal:
				acc.withdrawals += c.Amount
			case creditdomain.TypeAdvance:
				acc.advances += c.Amount
			}
			return acc
		},
	)

	rows := make([]reportdomain.LedgerRow, 0, len(groups))
	var balance float64
	for _, key := range aggregate.SortedKeys(groups) {
		group := groups[key]
		netFlow := group.deposits + group.advances - group.withdrawals
		balance += netFlow
		rows = append(rows, reportdomain.LedgerRow{
			Period:         key,
			Entries:        group.entries,
			Deposits:       round2(group.deposits),
			Withdrawals:    round2(group.withdrawals),
			Advances:       round2(group.advances),
			NetFlow:        round2(netFlow),
			RunningBalance: round2(balance),
		})
	}
	return rows
}
