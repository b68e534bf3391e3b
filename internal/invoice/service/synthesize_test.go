package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/crewbill/internal/invoice/domain"
	supplydomain "github.com/smallbiznis/crewbill/internal/supply/domain"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLaborLines_FlatOvertimeFactor(t *testing.T) {
	jobID := snowflake.ID(100)
	laborerA := snowflake.ID(1)
	laborerB := snowflake.ID(2)

	multiplier, err := timesheetdomain.NewMultiplier(3)
	require.NoError(t, err)

	timesheets := []timesheetdomain.Timesheet{
		{JobID: jobID, LaborerID: laborerA, RegularHours: 8, OvertimeHours: 2, Multiplier: multiplier, SalaryRate: 20, OrgRate: 35},
		{JobID: jobID, LaborerID: laborerB, RegularHours: 8, SalaryRate: 25, OrgRate: 40},
	}

	lines := buildLaborLines(timesheets, map[snowflake.ID]string{jobID: "Villa Project"}, 15, 1.5)
	require.Len(t, lines, 1)

	line := lines[0]
	// Regular 8*35 + 8*40 = 600; overtime billed at the flat 1.5 factor,
	// not the stored 3x multiplier: 2*35*1.5 = 105.
	assert.Equal(t, 705.0, line.LineTotal)
	assert.Equal(t, invoicedomain.SourceLabor, line.Source)
	assert.Equal(t, 1.0, line.Quantity)
	assert.Equal(t, 705.0, line.UnitPrice)
	assert.Equal(t, 105.75, line.VATAmount)
	assert.Contains(t, line.Description, "Villa Project")
	assert.Contains(t, line.Description, "16.0 regular hours")
	assert.Contains(t, line.Description, "2.0 overtime hours")
	assert.Contains(t, line.Description, "2 laborers")
}

func TestBuildLaborLines_PerRowOrgRate(t *testing.T) {
	jobID := snowflake.ID(7)
	timesheets := []timesheetdomain.Timesheet{
		{JobID: jobID, LaborerID: 1, RegularHours: 10, OrgRate: 30, SalaryRate: 15},
		{JobID: jobID, LaborerID: 1, RegularHours: 10, OrgRate: 32, SalaryRate: 15},
	}

	lines := buildLaborLines(timesheets, nil, 0, 1.5)
	require.Len(t, lines, 1)
	// Each row priced at its own rate: 10*30 + 10*32.
	assert.Equal(t, 620.0, lines[0].LineTotal)
}

func TestBuildSupplyLines_WeightedAverage(t *testing.T) {
	categoryID := snowflake.ID(55)
	supplies := []supplydomain.Supply{
		{CategoryID: categoryID, Name: "Cement bag", UnitPrice: 10, Quantity: 2},
		{CategoryID: categoryID, Name: "Quick-set", UnitPrice: 20, Quantity: 1},
	}

	lines := buildSupplyLines(supplies, map[snowflake.ID]string{categoryID: "Cement"}, 15)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, 3.0, line.Quantity)
	assert.Equal(t, 13.33, line.UnitPrice)
	// Line total is the exact summed value, not 3 x 13.33.
	assert.Equal(t, 40.0, line.LineTotal)
	assert.Equal(t, 6.0, line.VATAmount)
	assert.Equal(t, 46.0, line.TotalAmount)
	assert.Contains(t, line.Description, "Cement")
	assert.Contains(t, line.Description, "Cement bag x2 @ 10.00")
	assert.Contains(t, line.Description, "Quick-set x1 @ 20.00")
}

func TestDeriveTotals_Identity(t *testing.T) {
	lines := []invoicedomain.InvoiceLine{
		deriveLine(invoicedomain.SourceManual, "a", 2, 49.99, 99.98, 15),
		deriveLine(invoicedomain.SourceManual, "b", 1, 0.01, 0.01, 15),
		deriveLine(invoicedomain.SourceManual, "c", 3, 33.33, 99.99, 15),
	}

	subtotal, vatAmount, totalAmount := deriveTotals(lines)
	assert.Equal(t, totalAmount, invoicedomain.Round2(subtotal+vatAmount))

	var lineSum, vatSum float64
	for _, line := range lines {
		lineSum += line.LineTotal
		vatSum += line.VATAmount
	}
	assert.Equal(t, invoicedomain.Round2(lineSum), subtotal)
	assert.Equal(t, invoicedomain.Round2(vatSum), vatAmount)
}

func TestDeriveTotals_Empty(t *testing.T) {
	subtotal, vatAmount, totalAmount := deriveTotals(nil)
	assert.Zero(t, subtotal)
	assert.Zero(t, vatAmount)
	assert.Zero(t, totalAmount)
}
