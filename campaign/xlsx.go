package campaign

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// MakeXLSX writes the computed table as a single-sheet workbook. Numeric columns are written as
// numbers and undefined KPIs as empty cells.
func MakeXLSX(w io.Writer, table *Table, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Campaigns"
	}

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return err
	}

	extra := table.Extra()

	header := []any{}
	for _, h := range Columns {
		header = append(header, h)
	}
	for _, h := range extra {
		header = append(header, h)
	}
	for _, h := range Derived {
		header = append(header, h)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return err
	}

	for i, c := range ComputeAll(table) {
		row := []any{
			c.StartDate.String(),
			c.EndDate.String(),
			c.Project,
			c.Channel,
			number(c.Budget),
			number(c.ActualSpend),
			number(c.Leads),
			number(c.Meetings),
			number(c.Bookings),
		}

		for _, h := range extra {
			row = append(row, c.Extra[h])
		}

		row = append(row, number(c.CPL), number(c.CPA), number(c.ConversionRate))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("error writing row %v (%w)", i+2, err)
		}
	}

	return f.Write(w)
}

func number(v decimal.NullDecimal) any {
	if !v.Valid {
		return nil
	}

	return v.Decimal.InexactFloat64()
}
