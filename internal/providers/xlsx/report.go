package xlsx

import (
	"bytes"
	"fmt"
	"io"

	reportdomain "github.com/smallbiznis/crewbill/internal/report/domain"
	"github.com/xuri/excelize/v2"
)

type Exporter struct{}

func New() *Exporter {
	return &Exporter{}
}

// LaborReport writes one sheet with a row per laborer.
func (e *Exporter) LaborReport(rows []reportdomain.LaborRow) (io.Reader, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Labor"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := []string{"Laborer", "Entries", "Regular hours", "Overtime hours", "Regular pay", "Overtime pay", "Total pay", "Multiplier"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		values := []any{row.LaborerName, row.Entries, row.RegularHours, row.OvertimeHours, row.RegularPay, row.OvertimePay, row.TotalPay, row.MultiplierLabel}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	return render(f)
}

// ClientReport writes one sheet with charge, cost and profit per laborer.
func (e *Exporter) ClientReport(rows []reportdomain.ClientRow) (io.Reader, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Client"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := []string{"Laborer", "Entries", "Regular hours", "Overtime hours", "Charge", "Cost", "Profit"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		values := []any{row.LaborerName, row.Entries, row.RegularHours, row.OvertimeHours, row.Charge, row.Cost, row.Profit}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	return render(f)
}

// CreditLedger writes the period buckets with the running balance column.
func (e *Exporter) CreditLedger(rows []reportdomain.LedgerRow) (io.Reader, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ledger"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}

	headers := []string{"Period", "Entries", "Deposits", "Withdrawals", "Advances", "Net flow", "Running balance"}
	if err := writeHeader(f, sheet, headers); err != nil {
		return nil, err
	}
	for i, row := range rows {
		values := []any{row.Period, row.Entries, row.Deposits, row.Withdrawals, row.Advances, row.NetFlow, row.RunningBalance}
		if err := writeRow(f, sheet, i+2, values); err != nil {
			return nil, err
		}
	}

	return render(f)
}

func writeHeader(f *excelize.File, sheet string, headers []string) error {
	values := make([]any, len(headers))
	for i, header := range headers {
		values[i] = header
	}
	return writeRow(f, sheet, 1, values)
}

func writeRow(f *excelize.File, sheet string, rowIndex int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func render(f *excelize.File) (io.Reader, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.NewReader(buf.Bytes()), nil
}
