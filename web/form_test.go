package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/campaign-reporting/campaign-sheets/campaign"
)

func request(form url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/records", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return r
}

func TestParseRecord(t *testing.T) {
	today := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	record, err := parseRecord(request(url.Values{
		"start_date":   {"2024-03-01"},
		"end_date":     {"3/31/2024"},
		"project":      {"Spring"},
		"channel":      {"Email"},
		"new_channel":  {"ignored"},
		"budget":       {"1,000"},
		"actual_spend": {"99.999"},
		"leads":        {"12"},
		"meetings":     {"3"},
		"bookings":     {"1"},
	}), today)

	require.Error(t, err, "thousands separators are not accepted from the form")
	require.Nil(t, record)

	record, err = parseRecord(request(url.Values{
		"start_date":   {"2024-03-01"},
		"end_date":     {"3/31/2024"},
		"project":      {"Spring"},
		"channel":      {"Email"},
		"new_channel":  {"ignored"},
		"budget":       {"1000"},
		"actual_spend": {"99.999"},
		"leads":        {"12"},
		"meetings":     {"3"},
		"bookings":     {"1"},
	}), today)

	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"Start Date":   "2024-03-01",
		"End Date":     "2024-03-31",
		"Project":      "Spring",
		"Channel":      "Email",
		"Budget":       1000.0,
		"Actual Spend": 100.0,
		"Leads":        12.0,
		"Meetings":     3.0,
		"Bookings":     1.0,
	}, record.Row())
}

func TestParseRecordKeepsFormulaLikeText(t *testing.T) {
	today := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	record, err := parseRecord(request(url.Values{
		"project":     {"=IMPORTXML(\"http://example.com\", \"//a\")"},
		"channel":     {campaign.AddNew},
		"new_channel": {"007"},
	}), today)

	require.NoError(t, err)

	row := record.Row()
	require.Equal(t, `=IMPORTXML("http://example.com", "//a")`, row[campaign.Project])
	require.Equal(t, "007", row[campaign.Channel])
}

func TestParseRecordDefaults(t *testing.T) {
	today := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	record, err := parseRecord(request(url.Values{
		"channel":     {campaign.AddNew},
		"new_channel": {" Podcast "},
	}), today)

	require.NoError(t, err)
	require.Equal(t, "2024-03-15", record.StartDate.String())
	require.Equal(t, "2024-03-15", record.EndDate.String())
	require.Equal(t, "Podcast", record.Channel)
	require.Equal(t, "", record.Project)

	for _, v := range []string{record.Budget.Decimal.String(), record.Leads.Decimal.String(), record.Bookings.Decimal.String()} {
		require.Equal(t, "0", v)
	}
}

func TestParseRecordWithInvalidFields(t *testing.T) {
	today := time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

	tests := []struct {
		form     url.Values
		expected string
	}{
		{url.Values{"start_date": {"yesterday"}}, "invalid start date ('yesterday' is not a date)"},
		{url.Values{"end_date": {"31/31/2024"}}, "invalid end date ('31/31/2024' is not a date)"},
		{url.Values{"budget": {"-5"}}, "invalid budget ('-5' is negative)"},
		{url.Values{"actual_spend": {"lots"}}, "invalid actual spend ('lots' is not a number)"},
		{url.Values{"leads": {"2.5"}}, "invalid leads ('2.5' is not a whole number)"},
		{url.Values{"meetings": {"-1"}}, "invalid meetings ('-1' is negative)"},
	}

	for _, test := range tests {
		_, err := parseRecord(request(test.form), today)
		require.EqualError(t, err, test.expected)
	}
}
