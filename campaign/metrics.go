package campaign

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Metrics holds the KPIs derived from a single record. A metric is invalid (undefined) whenever
// its divisor is zero or missing.
type Metrics struct {
	CPL            decimal.NullDecimal
	CPA            decimal.NullDecimal
	ConversionRate decimal.NullDecimal
}

// Computed is a record paired with its derived metrics.
type Computed struct {
	Record
	Metrics
}

// Values returns the source fields followed by CPL, CPA and conversion rate as display strings.
func (c Computed) Values() []string {
	return append(c.Record.Values(), format(c.CPL), format(c.CPA), format(c.ConversionRate))
}

// SafeDivide returns n/d rounded to 2 decimal places, or an invalid value if either operand is
// missing or the denominator is zero.
func SafeDivide(n, d decimal.NullDecimal) decimal.NullDecimal {
	if !n.Valid || !d.Valid || d.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}

	return decimal.NewNullDecimal(n.Decimal.Div(d.Decimal).Round(2))
}

// Compute derives CPL, CPA and conversion rate for one record. It depends on nothing but the
// record so it can be reapplied freely.
func Compute(r Record) Metrics {
	m := Metrics{
		CPL: SafeDivide(r.ActualSpend, r.Leads),
		CPA: SafeDivide(r.ActualSpend, r.Meetings),
	}

	if r.Bookings.Valid {
		bookings := decimal.NewNullDecimal(r.Bookings.Decimal.Mul(hundred))
		m.ConversionRate = SafeDivide(bookings, r.Leads)
	}

	return m
}

// ComputeAll derives the metrics for every record in the table, in worksheet order.
func ComputeAll(table *Table) []Computed {
	if table == nil {
		return nil
	}

	list := make([]Computed, 0, len(table.Records))
	for _, r := range table.Records {
		list = append(list, Computed{
			Record:  r,
			Metrics: Compute(r),
		})
	}

	return list
}
