package campaign

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

var equate = cmp.Comparer(func(p, q decimal.Decimal) bool {
	return p.Equal(q)
})

func TestMakeTable(t *testing.T) {
	expected := Table{
		Header: []string{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings"},
		Records: []Record{
			{
				StartDate:   NewDate(2024, 1, 1),
				EndDate:     NewDate(2024, 1, 31),
				Project:     "Launch",
				Channel:     "Email",
				Budget:      d("1000"),
				ActualSpend: d("800"),
				Leads:       d("40"),
				Meetings:    d("10"),
				Bookings:    d("5"),
			},
			{
				StartDate:   NewDate(2024, 2, 1),
				EndDate:     NewDate(2024, 2, 29),
				Project:     "Retarget",
				Channel:     "Social",
				Budget:      d("2500.50"),
				ActualSpend: d("1200"),
				Leads:       d("0"),
				Meetings:    decimal.NullDecimal{},
				Bookings:    d("0"),
			},
		},
	}

	data := [][]any{
		{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings"},
		{"2024-01-01", "2024-01-31", "Launch", "Email", 1000.0, 800.0, 40.0, 10.0, 5.0},
		{"2/1/2024", "2024-02-29", " Retarget ", "Social", "2,500.50", "$1,200", "0", "", 0.0},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if table == nil {
		t.Fatalf("MakeTable returned %v", table)
	}

	if diff := cmp.Diff(expected, *table, equate); diff != "" {
		t.Errorf("Incorrect table (-expected +got):\n%s", diff)
	}
}

func TestMakeTableWithOutOfOrderColumns(t *testing.T) {
	data := [][]any{
		{"Channel", "Leads", "Project", "Bookings", "Start Date", "Actual Spend", "End Date", "Meetings", "Budget"},
		{"Email", 40.0, "Launch", 5.0, "2024-01-01", 800.0, "2024-01-31", 10.0, 1000.0},
	}

	expected := []Record{
		{
			StartDate:   NewDate(2024, 1, 1),
			EndDate:     NewDate(2024, 1, 31),
			Project:     "Launch",
			Channel:     "Email",
			Budget:      d("1000"),
			ActualSpend: d("800"),
			Leads:       d("40"),
			Meetings:    d("10"),
			Bookings:    d("5"),
		},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if diff := cmp.Diff(expected, table.Records, equate); diff != "" {
		t.Errorf("Incorrect records (-expected +got):\n%s", diff)
	}
}

func TestMakeTableWithExtraColumnsAndShortRows(t *testing.T) {
	data := [][]any{
		{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings", "Owner"},
		{"2024-01-01", "2024-01-31", "Launch", "Email", 1000.0, 800.0, 40.0, 10.0, 5.0, "Ani"},
		{"2024-03-01", "2024-03-31", "Webinar", "Email", 300.0},
		{},
		{"", "", "  "},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if len(table.Records) != 2 {
		t.Fatalf("Incorrect number of records - expected:%v, got:%v", 2, len(table.Records))
	}

	if extra := table.Extra(); !cmp.Equal(extra, []string{"Owner"}) {
		t.Errorf("Incorrect extra columns - expected:%v, got:%v", []string{"Owner"}, extra)
	}

	if owner := table.Records[0].Extra["Owner"]; owner != "Ani" {
		t.Errorf("Incorrect 'Owner' - expected:%v, got:%v", "Ani", owner)
	}

	r := table.Records[1]
	if r.ActualSpend.Valid || r.Leads.Valid || r.Meetings.Valid || r.Bookings.Valid {
		t.Errorf("Expected missing values for short row, got %+v", r)
	}
}

func TestMakeTableWithUnparseableValues(t *testing.T) {
	data := [][]any{
		{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings"},
		{"Q1", "2024-01-31", "Launch", "Email", "n/a", 800.0, "lots", 10.0, 5.0},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	r := table.Records[0]
	if r.StartDate.String() != "Q1" {
		t.Errorf("Incorrect start date - expected:%v, got:%v", "Q1", r.StartDate)
	}

	if r.Budget.Valid || r.Leads.Valid {
		t.Errorf("Expected undefined values for non-numeric cells, got %+v", r)
	}

	if m := Compute(r); m.CPL.Valid || m.ConversionRate.Valid {
		t.Errorf("Expected undefined KPIs for non-numeric leads, got %+v", m)
	}
}

func TestMakeTableWithHeaderOnly(t *testing.T) {
	data := [][]any{
		{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if len(table.Records) != 0 {
		t.Errorf("Expected no records, got %v", table.Records)
	}
}

func TestMakeTableWithEmptySheet(t *testing.T) {
	var data = [][]any{}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for empty sheet, got %v", err)
	}
}

func TestMakeTableWithoutHeaders(t *testing.T) {
	data := [][]any{
		{},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for missing headers, got %v", err)
	}
}

func TestMakeTableWithDuplicateColumns(t *testing.T) {
	data := [][]any{
		{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings", "actual spend"},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for duplicate 'actual spend' column, got %v", err)
	}
}

func TestMakeTableWithMissingColumn(t *testing.T) {
	data := [][]any{
		{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Bookings"},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for missing 'meetings' column, got %v", err)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		value    any
		expected decimal.NullDecimal
	}{
		{12.5, d("12.5")},
		{int64(7), d("7")},
		{"1,234.50", d("1234.5")},
		{"$800", d("800")},
		{"12.5%", d("12.5")},
		{"", decimal.NullDecimal{}},
		{"  ", decimal.NullDecimal{}},
		{"abc", decimal.NullDecimal{}},
		{true, decimal.NullDecimal{}},
		{nil, decimal.NullDecimal{}},
	}

	for _, test := range tests {
		v := Number(test.value)
		if v.Valid != test.expected.Valid || (v.Valid && !v.Decimal.Equal(test.expected.Decimal)) {
			t.Errorf("Number(%#v): expected:%v, got:%v", test.value, test.expected, v)
		}
	}
}
