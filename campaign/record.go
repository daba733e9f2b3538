package campaign

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sheet column names, in the order the worksheet declares them.
const (
	StartDate   = "Start Date"
	EndDate     = "End Date"
	Project     = "Project"
	Channel     = "Channel"
	Budget      = "Budget"
	ActualSpend = "Actual Spend"
	Leads       = "Leads"
	Meetings    = "Meetings"
	Bookings    = "Bookings"
)

// Derived column names. These are never written back to the worksheet.
const (
	CPL            = "CPL"
	CPA            = "CPA"
	ConversionRate = "Conversion Rate (%)"
)

// Columns is the worksheet column order for a Campaign Record.
var Columns = []string{
	StartDate,
	EndDate,
	Project,
	Channel,
	Budget,
	ActualSpend,
	Leads,
	Meetings,
	Bookings,
}

// Derived lists the KPI columns appended to the table for display and export.
var Derived = []string{CPL, CPA, ConversionRate}

// Record is one row of the campaign worksheet.
type Record struct {
	StartDate   Date
	EndDate     Date
	Project     string
	Channel     string
	Budget      decimal.NullDecimal
	ActualSpend decimal.NullDecimal
	Leads       decimal.NullDecimal
	Meetings    decimal.NullDecimal
	Bookings    decimal.NullDecimal

	// Extra holds any additional worksheet columns, keyed by header text.
	Extra map[string]string
}

// Row returns the record keyed by worksheet column name for a RAW append. Text is stored as is,
// amounts and counts as numbers and undefined values as blank cells.
func (r Record) Row() map[string]any {
	return map[string]any{
		StartDate:   r.StartDate.String(),
		EndDate:     r.EndDate.String(),
		Project:     r.Project,
		Channel:     r.Channel,
		Budget:      Cell(r.Budget),
		ActualSpend: Cell(r.ActualSpend),
		Leads:       Cell(r.Leads),
		Meetings:    Cell(r.Meetings),
		Bookings:    Cell(r.Bookings),
	}
}

// Cell converts a decimal to a worksheet number, or a blank cell if it is undefined.
func Cell(v decimal.NullDecimal) any {
	if !v.Valid {
		return ""
	}

	return v.Decimal.InexactFloat64()
}

// Numeric is true for the amount and count columns.
func Numeric(column string) bool {
	switch Normalise(column) {
	case Normalise(Budget), Normalise(ActualSpend), Normalise(Leads), Normalise(Meetings), Normalise(Bookings):
		return true
	default:
		return false
	}
}

// Values returns the nine source fields as display strings in worksheet column order.
func (r Record) Values() []string {
	return []string{
		r.StartDate.String(),
		r.EndDate.String(),
		r.Project,
		r.Channel,
		format(r.Budget),
		format(r.ActualSpend),
		format(r.Leads),
		format(r.Meetings),
		format(r.Bookings),
	}
}

// Date is a calendar date read from, or written to, the worksheet. Cells that do not parse as a
// date keep their original text so that they are displayed unchanged.
type Date struct {
	time.Time
	Raw string
}

var layouts = []string{"2006-01-02", "1/2/2006", "2006/01/02"}

// ParseDate accepts ISO dates and the Google Sheets US default format. Unrecognised text is kept
// verbatim with a zero Time.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Date{Time: t}
		}
	}

	return Date{Raw: s}
}

// NewDate returns the Date for a year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

func (d Date) String() string {
	if d.IsZero() {
		return d.Raw
	}

	return d.Format("2006-01-02")
}

func format(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}

	return v.Decimal.String()
}
