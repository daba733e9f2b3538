package web

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

// parseRecord builds a Campaign Record from the 'add record' form. Blank dates default to today,
// blank amounts and counts to zero. Choosing 'Add new...' takes the channel from new_channel.
func parseRecord(r *http.Request, today time.Time) (*campaign.Record, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}

	start, err := date(r.PostFormValue("start_date"), today)
	if err != nil {
		return nil, fmt.Errorf("invalid start date (%w)", err)
	}

	end, err := date(r.PostFormValue("end_date"), today)
	if err != nil {
		return nil, fmt.Errorf("invalid end date (%w)", err)
	}

	channel := strings.TrimSpace(r.PostFormValue("channel"))
	if channel == campaign.AddNew {
		channel = strings.TrimSpace(r.PostFormValue("new_channel"))
	}

	record := campaign.Record{
		StartDate: start,
		EndDate:   end,
		Project:   strings.TrimSpace(r.PostFormValue("project")),
		Channel:   channel,
	}

	amounts := []struct {
		field string
		value *decimal.NullDecimal
	}{
		{"budget", &record.Budget},
		{"actual_spend", &record.ActualSpend},
	}

	for _, a := range amounts {
		if v, err := amount(r.PostFormValue(a.field)); err != nil {
			return nil, fmt.Errorf("invalid %v (%w)", strings.ReplaceAll(a.field, "_", " "), err)
		} else {
			*a.value = decimal.NewNullDecimal(v)
		}
	}

	counts := []struct {
		field string
		value *decimal.NullDecimal
	}{
		{"leads", &record.Leads},
		{"meetings", &record.Meetings},
		{"bookings", &record.Bookings},
	}

	for _, c := range counts {
		if v, err := count(r.PostFormValue(c.field)); err != nil {
			return nil, fmt.Errorf("invalid %v (%w)", c.field, err)
		} else {
			*c.value = decimal.NewNullDecimal(v)
		}
	}

	return &record, nil
}

func date(s string, today time.Time) (campaign.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return campaign.NewDate(today.Year(), today.Month(), today.Day()), nil
	}

	d := campaign.ParseDate(s)
	if d.IsZero() {
		return d, fmt.Errorf("'%v' is not a date", s)
	}

	return d, nil
}

// amount parses a non-negative currency amount, rounded to cents.
func amount(s string) (decimal.Decimal, error) {
	v, err := number(s)
	if err != nil {
		return v, err
	}

	return v.Round(2), nil
}

func count(s string) (decimal.Decimal, error) {
	v, err := number(s)
	if err != nil {
		return v, err
	} else if !v.IsInteger() {
		return decimal.Zero, fmt.Errorf("'%v' is not a whole number", strings.TrimSpace(s))
	}

	return v, nil
}

func number(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("'%v' is not a number", s)
	} else if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("'%v' is negative", s)
	}

	return v, nil
}
