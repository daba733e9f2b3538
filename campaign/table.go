package campaign

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Table is a worksheet read as Campaign Records. Header is the worksheet header row as read.
type Table struct {
	Header  []string
	Records []Record
}

// Index maps normalised column names to their position in a header row.
type Index map[string]int

// MakeIndex builds the column index for a header row, rejecting duplicate column names.
func MakeIndex(header []any) (Index, error) {
	index := Index{}
	for i, v := range header {
		k := Normalise(cell(v))
		if k == "" {
			continue
		}

		if _, ok := index[k]; ok {
			return nil, fmt.Errorf("duplicate column name '%v'", v)
		}

		index[k] = i
	}

	return index, nil
}

// Find returns the position of a named column.
func (x Index) Find(column string) (int, bool) {
	ix, ok := x[Normalise(column)]
	return ix, ok
}

// MakeTable converts a worksheet value range into Campaign Records. The first row is the header;
// columns are matched by normalised name so the worksheet column order is irrelevant.
func MakeTable(rows [][]any) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	// .. build index
	index, err := MakeIndex(rows[0])
	if err != nil {
		return nil, err
	}

	if len(index) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	for _, c := range Columns {
		if _, ok := index.Find(c); !ok {
			return nil, fmt.Errorf("missing '%s' column", strings.ToLower(c))
		}
	}

	// ... header
	header := []string{}
	for _, v := range rows[0] {
		header = append(header, clean(cell(v)))
	}

	table := Table{
		Header:  header,
		Records: []Record{},
	}

	extra := table.Extra()

	// ... records
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}

		get := func(column string) any {
			if ix, ok := index.Find(column); ok && ix < len(row) {
				return row[ix]
			}
			return nil
		}

		record := Record{
			StartDate:   ParseDate(cell(get(StartDate))),
			EndDate:     ParseDate(cell(get(EndDate))),
			Project:     clean(cell(get(Project))),
			Channel:     clean(cell(get(Channel))),
			Budget:      Number(get(Budget)),
			ActualSpend: Number(get(ActualSpend)),
			Leads:       Number(get(Leads)),
			Meetings:    Number(get(Meetings)),
			Bookings:    Number(get(Bookings)),
		}

		if len(extra) > 0 {
			record.Extra = map[string]string{}
			for _, h := range extra {
				record.Extra[h] = clean(cell(get(h)))
			}
		}

		table.Records = append(table.Records, record)
	}

	return &table, nil
}

// Extra returns the header names that are not Campaign Record columns, in worksheet order.
func (t *Table) Extra() []string {
	extra := []string{}
	for _, h := range t.Header {
		if h != "" && !isColumn(h) {
			extra = append(extra, h)
		}
	}

	return extra
}

// Number coerces a worksheet cell to a decimal. Numbers are taken as is, numeric text may carry
// thousands separators, a leading currency symbol or a trailing percent sign. Anything else,
// including blank cells, is invalid.
func Number(v any) decimal.NullDecimal {
	switch n := v.(type) {
	case nil:
		return decimal.NullDecimal{}

	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(n))

	case float32:
		return decimal.NewNullDecimal(decimal.NewFromFloat32(n))

	case int:
		return decimal.NewNullDecimal(decimal.NewFromInt(int64(n)))

	case int64:
		return decimal.NewNullDecimal(decimal.NewFromInt(n))

	case decimal.Decimal:
		return decimal.NewNullDecimal(n)

	case string:
		s := strings.TrimSpace(n)
		s = strings.TrimLeft(s, "$€£")
		s = strings.TrimSuffix(s, "%")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return decimal.NullDecimal{}
		}

		if d, err := decimal.NewFromString(s); err == nil {
			return decimal.NewNullDecimal(d)
		}
	}

	return decimal.NullDecimal{}
}

func isColumn(h string) bool {
	k := Normalise(h)
	for _, c := range Columns {
		if Normalise(c) == k {
			return true
		}
	}

	return false
}

func blank(row []any) bool {
	for _, v := range row {
		if clean(cell(v)) != "" {
			return false
		}
	}

	return true
}

func cell(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

// Normalise folds a column name for matching: lower case with spaces removed.
func Normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
