package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	creditdomain "github.com/smallbiznis/crewbill/internal/credit/domain"
	expensedomain "github.com/smallbiznis/crewbill/internal/expense/domain"
	reportdomain "github.com/smallbiznis/crewbill/internal/report/domain"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMultiplier(t *testing.T, value float64) timesheetdomain.Multiplier {
	t.Helper()
	m, err := timesheetdomain.NewMultiplier(value)
	require.NoError(t, err)
	return m
}

func TestLaborRows_TenDayScenario(t *testing.T) {
	laborerID := snowflake.ID(42)
	multiplier := mustMultiplier(t, 1.5)

	var timesheets []timesheetdomain.Timesheet
	for day := 1; day <= 10; day++ {
		timesheets = append(timesheets, timesheetdomain.Timesheet{
			LaborerID:     laborerID,
			WorkDate:      time.Date(2026, 2, day, 0, 0, 0, 0, time.UTC),
			RegularHours:  5,
			OvertimeHours: 1,
			Multiplier:    multiplier,
			SalaryRate:    20,
			OrgRate:       35,
		})
	}

	rows := laborRows(timesheets, map[snowflake.ID]string{laborerID: "Hamid"})
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Hamid", row.LaborerName)
	assert.Equal(t, 10, row.Entries)
	assert.Equal(t, 50.0, row.RegularHours)
	assert.Equal(t, 10.0, row.OvertimeHours)
	assert.Equal(t, 1000.0, row.RegularPay)
	assert.Equal(t, 300.0, row.OvertimePay)
	assert.Equal(t, 1300.0, row.TotalPay)
	assert.Equal(t, "1.5x", row.MultiplierLabel)
}

func TestLaborRows_RegroupingIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var timesheets []timesheetdomain.Timesheet
	for i := 0; i < 60; i++ {
		ts := timesheetdomain.Timesheet{
			LaborerID:    snowflake.ID(1 + i%4),
			RegularHours: float64(4 + rng.Intn(6)),
			SalaryRate:   15 + float64(rng.Intn(10)),
			OrgRate:      30 + float64(rng.Intn(10)),
		}
		if i%3 == 0 {
			ts.OvertimeHours = 2
			ts.Multiplier = mustMultiplier(t, 1.5)
		}
		timesheets = append(timesheets, ts)
	}

	var direct float64
	for _, ts := range timesheets {
		direct += ts.RegularHours * ts.SalaryRate
		direct += ts.OvertimeHours * ts.SalaryRate * ts.Multiplier.Or(1.5)
	}

	var grouped float64
	for _, row := range laborRows(timesheets, nil) {
		grouped += row.TotalPay
	}
	assert.InDelta(t, direct, grouped, 0.05)

	// Shuffling the input changes nothing.
	rng.Shuffle(len(timesheets), func(i, j int) {
		timesheets[i], timesheets[j] = timesheets[j], timesheets[i]
	})
	var reshuffled float64
	for _, row := range laborRows(timesheets, nil) {
		reshuffled += row.TotalPay
	}
	assert.Equal(t, grouped, reshuffled)
}

func TestLaborRows_MultiplierRangeLabel(t *testing.T) {
	laborerID := snowflake.ID(9)
	timesheets := []timesheetdomain.Timesheet{
		{LaborerID: laborerID, RegularHours: 8, OvertimeHours: 1, Multiplier: mustMultiplier(t, 1.5), SalaryRate: 20, OrgRate: 35},
		{LaborerID: laborerID, RegularHours: 8, OvertimeHours: 1, Multiplier: mustMultiplier(t, 3), SalaryRate: 20, OrgRate: 35},
		{LaborerID: laborerID, RegularHours: 8, SalaryRate: 20, OrgRate: 35},
	}

	rows := laborRows(timesheets, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "1.5x-3x", rows[0].MultiplierLabel)

	// No overtime anywhere: no label.
	rows = laborRows(timesheets[2:], nil)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].MultiplierLabel)
}

func TestClientRows_ChargeCostProfit(t *testing.T) {
	laborerID := snowflake.ID(5)
	timesheets := []timesheetdomain.Timesheet{
		{LaborerID: laborerID, RegularHours: 10, OvertimeHours: 2, Multiplier: mustMultiplier(t, 2), SalaryRate: 20, OrgRate: 35},
	}

	rows := clientRows(timesheets, map[snowflake.ID]string{laborerID: "Hamid"})
	require.Len(t, rows, 1)

	row := rows[0]
	// Charge 10*35 + 2*35*2 = 490; cost 10*20 + 2*20*2 = 280.
	assert.Equal(t, 490.0, row.Charge)
	assert.Equal(t, 280.0, row.Cost)
	assert.Equal(t, 210.0, row.Profit)
}

func TestProfitLoss_MarginsAndBreakdown(t *testing.T) {
	catA := snowflake.ID(1)
	catB := snowflake.ID(2)
	timesheets := []timesheetdomain.Timesheet{
		{LaborerID: 1, RegularHours: 100, SalaryRate: 20, OrgRate: 40},
	}
	expenses := []expensedomain.Expense{
		{CategoryID: catA, Amount: 500},
		{CategoryID: catA, Amount: 300},
		{CategoryID: catB, Amount: 200},
	}

	report := profitLoss(timesheets, expenses, map[snowflake.ID]string{catA: "Fuel", catB: "Tools"})
	assert.Equal(t, 4000.0, report.Revenue)
	assert.Equal(t, 2000.0, report.LaborCost)
	assert.Equal(t, 2000.0, report.GrossProfit)
	assert.Equal(t, 1000.0, report.TotalExpenses)
	assert.Equal(t, 1000.0, report.NetProfit)
	assert.Equal(t, 50.0, report.GrossMarginPct)
	assert.Equal(t, 25.0, report.NetMarginPct)

	require.Len(t, report.ExpenseBreakdown, 2)
	assert.Equal(t, "Fuel", report.ExpenseBreakdown[0].CategoryName)
	assert.Equal(t, 800.0, report.ExpenseBreakdown[0].Amount)
	assert.Equal(t, 2, report.ExpenseBreakdown[0].Entries)
}

func TestProfitLoss_ZeroRevenueNoDivisionFault(t *testing.T) {
	report := profitLoss(nil, []expensedomain.Expense{{CategoryID: 1, Amount: 100}}, nil)
	assert.Zero(t, report.Revenue)
	assert.Zero(t, report.GrossMarginPct)
	assert.Zero(t, report.NetMarginPct)
	assert.Equal(t, -100.0, report.NetProfit)
}

func TestCreditLedger_ThreeMonthDepositsMonotonic(t *testing.T) {
	credits := []creditdomain.Credit{
		{Date: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), Amount: 100, Type: creditdomain.TypeDeposit},
		{Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), Amount: 200, Type: creditdomain.TypeDeposit},
		{Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), Amount: 50, Type: creditdomain.TypeDeposit},
	}

	rows := creditLedger(credits, reportdomain.BucketMonth, time.UTC)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2026-01", "2026-02", "2026-03"},
		[]string{rows[0].Period, rows[1].Period, rows[2].Period})

	previous := 0.0
	for _, row := range rows {
		assert.GreaterOrEqual(t, row.RunningBalance, previous)
		previous = row.RunningBalance
	}
	assert.Equal(t, 350.0, rows[2].RunningBalance)
}

func TestCreditLedger_RunningBalanceOrderInsensitive(t *testing.T) {
	base := []creditdomain.Credit{
		{Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), Amount: 500, Type: creditdomain.TypeDeposit},
		{Date: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), Amount: 120, Type: creditdomain.TypeWithdrawal},
		{Date: time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), Amount: 80, Type: creditdomain.TypeAdvance},
		{Date: time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), Amount: 40, Type: creditdomain.TypeWithdrawal},
	}

	expected := creditLedger(base, reportdomain.BucketMonth, time.UTC)
	require.Len(t, expected, 2)
	// Net flow: deposits + advances - withdrawals.
	assert.Equal(t, 380.0, expected[0].NetFlow)
	assert.Equal(t, 40.0, expected[1].NetFlow)
	assert.Equal(t, 380.0, expected[0].RunningBalance)
	assert.Equal(t, 420.0, expected[1].RunningBalance)

	shuffled := make([]creditdomain.Credit, len(base))
	copy(shuffled, base)
	rand.New(rand.NewSource(3)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	assert.Equal(t, expected, creditLedger(shuffled, reportdomain.BucketMonth, time.UTC))

	// Running balance equals the cumulative net flow in period order.
	var cumulative float64
	for _, row := range expected {
		cumulative += row.NetFlow
		assert.Equal(t, cumulative, row.RunningBalance)
	}
}

func TestCreditLedger_WeekStartsSunday(t *testing.T) {
	// 2026-03-04 is a Wednesday; its week starts Sunday 2026-03-01.
	// 2026-03-08 is the following Sunday and starts its own week.
	credits := []creditdomain.Credit{
		{Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), Amount: 10, Type: creditdomain.TypeDeposit},
		{Date: time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), Amount: 20, Type: creditdomain.TypeDeposit},
	}

	rows := creditLedger(credits, reportdomain.BucketWeek, time.UTC)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-03-01", rows[0].Period)
	assert.Equal(t, "2026-03-08", rows[1].Period)
}

func TestCreditLedger_BucketKeysInBusinessZone(t *testing.T) {
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	// 22:30 UTC is already the next civil day in Riyadh (+03).
	credits := []creditdomain.Credit{
		{Date: time.Date(2026, 3, 4, 22, 30, 0, 0, time.UTC), Amount: 10, Type: creditdomain.TypeDeposit},
	}

	rows := creditLedger(credits, reportdomain.BucketDay, riyadh)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-03-05", rows[0].Period)
}
