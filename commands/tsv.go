package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

// tsvToRows reads a TSV file with a header line into rows keyed by column name. The derived KPI
// columns written by 'get' are dropped and blank lines are skipped. Amounts and counts are
// converted to numbers so that they are appended as numbers rather than text.
func tsvToRows(f io.Reader) ([]map[string]any, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	// ... header
	header := []string{}
	index := map[string]bool{}
	for _, v := range records[0] {
		h := strings.TrimSpace(v)
		k := campaign.Normalise(h)
		if index[k] {
			return nil, fmt.Errorf("duplicate column name '%s'", h)
		}

		index[k] = true
		header = append(header, h)
	}

	derived := map[string]bool{}
	for _, h := range campaign.Derived {
		derived[campaign.Normalise(h)] = true
	}

	// ... rows
	rows := []map[string]any{}
	for i, record := range records[1:] {
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			continue
		}

		if len(record) > len(header) {
			return nil, fmt.Errorf("line %v: too many fields (%v), expected %v", i+2, len(record), len(header))
		}

		row := map[string]any{}
		for j, h := range header {
			if h == "" || derived[campaign.Normalise(h)] {
				continue
			}

			v := ""
			if j < len(record) {
				v = strings.TrimSpace(record[j])
			}

			if !campaign.Numeric(h) || v == "" {
				row[h] = v
			} else if n := campaign.Number(v); n.Valid {
				row[h] = campaign.Cell(n)
			} else {
				return nil, fmt.Errorf("line %v: invalid %v '%v'", i+2, h, v)
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}
