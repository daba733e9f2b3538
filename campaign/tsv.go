package campaign

import (
	"encoding/csv"
	"io"
)

// MakeTSV writes the computed table as tab separated values: the nine worksheet columns, any
// extra worksheet columns and the three derived KPI columns. Undefined KPIs are written as empty
// fields.
func MakeTSV(f io.Writer, table *Table) error {
	extra := table.Extra()

	header := []string{}
	header = append(header, Columns...)
	header = append(header, extra...)
	header = append(header, Derived...)

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, c := range ComputeAll(table) {
		record := c.Record.Values()
		for _, h := range extra {
			record = append(record, c.Extra[h])
		}

		record = append(record, format(c.CPL), format(c.CPA), format(c.ConversionRate))

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
