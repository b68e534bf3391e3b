package service

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/crewbill/internal/billing/aggregate"
	invoicedomain "github.com/smallbiznis/crewbill/internal/invoice/domain"
	supplydomain "github.com/smallbiznis/crewbill/internal/supply/domain"
	timesheetdomain "github.com/smallbiznis/crewbill/internal/timesheet/domain"
)

type laborGroup struct {
	regularHours   float64
	overtimeHours  float64
	regularAmount  float64
	overtimeAmount float64
	laborers       map[snowflake.ID]struct{}
}

// buildLaborLines groups the month's timesheets by job and prices each
// group at the row's own org rate. Overtime is billed at the flat
// configured factor; the per-timesheet multiplier belongs to payroll
// reporting, not client billing.
func buildLaborLines(timesheets []timesheetdomain.Timesheet, jobNames map[snowflake.ID]string, vatRate, overtimeFactor float64) []invoicedomain.InvoiceLine {
	groups := aggregate.Fold(timesheets,
		func(t timesheetdomain.Timesheet) snowflake.ID { return t.JobID },
		func(snowflake.ID) laborGroup {
			return laborGroup{laborers: make(map[snowflake.ID]struct{})}
		},
		func(acc laborGroup, t timesheetdomain.Timesheet) laborGroup {
			acc.regularHours += t.RegularHours
			acc.overtimeHours += t.OvertimeHours
			acc.regularAmount += t.RegularHours * t.OrgRate
			acc.overtimeAmount += t.OvertimeHours * t.OrgRate * overtimeFactor
			acc.laborers[t.LaborerID] = struct{}{}
			return acc
		},
	)

	lines := make([]invoicedomain.InvoiceLine, 0, len(groups))
	for _, jobID := range aggregate.SortedKeys(groups) {
		group := groups[jobID]
		jobName := jobNames[jobID]
		if jobName == "" {
			jobName = jobID.String()
		}

		description := fmt.Sprintf("Labor at %s: %.1f regular hours, %.1f overtime hours, %d laborers",
			jobName, group.regularHours, group.overtimeHours, len(group.laborers))
		total := group.regularAmount + group.overtimeAmount
		lines = append(lines, deriveLine(invoicedomain.SourceLabor, description, 1, total, total, vatRate))
	}
	return lines
}

type supplyGroup struct {
	quantity   int64
	totalValue float64
	items      []string
}

// buildSupplyLines groups supplies by category. The line's unit price is
// the category's weighted average (total value over total quantity); the
// line total is the exact summed value, never quantity times the rounded
// average.
func buildSupplyLines(supplies []supplydomain.Supply, categoryNames map[snowflake.ID]string, vatRate float64) []invoicedomain.InvoiceLine {
	groups := aggregate.Fold(supplies,
		func(s supplydomain.Supply) snowflake.ID { return s.CategoryID },
		func(snowflake.ID) supplyGroup { return supplyGroup{} },
		func(acc supplyGroup, s supplydomain.Supply) supplyGroup {
			acc.quantity += s.Quantity
			acc.totalValue += s.TotalValue()
			acc.items = append(acc.items, fmt.Sprintf("%s x%d @ %.2f", s.Name, s.Quantity, s.UnitPrice))
			return acc
		},
	)

	lines := make([]invoicedomain.InvoiceLine, 0, len(groups))
	for _, categoryID := range aggregate.SortedKeys(groups) {
		group := groups[categoryID]
		categoryName := categoryNames[categoryID]
		if categoryName == "" {
			categoryName = categoryID.String()
		}

		description := fmt.Sprintf("Supplies %s (%s)", categoryName, strings.Join(group.items, "; "))
		unitPrice := group.totalValue / float64(group.quantity)
		lines = append(lines, deriveLine(invoicedomain.SourceSupply, description, float64(group.quantity), unitPrice, group.totalValue, vatRate))
	}
	return lines
}

// deriveLine materializes a line at render precision. lineTotal is passed
// explicitly because weighted-average lines carry an exact total that
// quantity times the rounded unit price would not reproduce.
func deriveLine(source invoicedomain.LineSource, description string, quantity, unitPrice, lineTotal, vatRate float64) invoicedomain.InvoiceLine {
	rounded := invoicedomain.Round2(lineTotal)
	vatAmount := invoicedomain.Round2(lineTotal * vatRate / 100)
	return invoicedomain.InvoiceLine{
		Source:      source,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   invoicedomain.Round2(unitPrice),
		VATRate:     vatRate,
		LineTotal:   rounded,
		VATAmount:   vatAmount,
		TotalAmount: invoicedomain.Round2(rounded + vatAmount),
	}
}

// deriveTotals sums materialized lines. The invoice total is subtotal plus
// VAT by construction, never an independent sum.
func deriveTotals(lines []invoicedomain.InvoiceLine) (subtotal, vatAmount, totalAmount float64) {
	for _, line := range lines {
		subtotal += line.LineTotal
		vatAmount += line.VATAmount
	}
	subtotal = invoicedomain.Round2(subtotal)
	vatAmount = invoicedomain.Round2(vatAmount)
	totalAmount = invoicedomain.Round2(subtotal + vatAmount)
	return subtotal, vatAmount, totalAmount
}
