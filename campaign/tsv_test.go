package campaign

import (
	"strings"
	"testing"
)

func TestMakeTSV(t *testing.T) {
	expected := `Start Date	End Date	Project	Channel	Budget	Actual Spend	Leads	Meetings	Bookings	CPL	CPA	Conversion Rate (%)
2024-01-01	2024-01-31	Launch	Email	1000	800	40	10	5	20	80	12.5
2024-02-01	2024-02-29	Retarget	Social	2500.5	1200	0		0			
`

	var f strings.Builder
	var data = [][]any{
		{"Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings"},
		{"2024-01-01", "2024-01-31", "Launch", "Email", 1000.0, 800.0, 40.0, 10.0, 5.0},
		{"2024-02-01", "2024-02-29", "Retarget", "Social", "2,500.50", 1200.0, 0.0, "", 0.0},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if err := MakeTSV(&f, table); err != nil {
		t.Fatalf("Unexpected error returned from MakeTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestMakeTSVWithExtraColumns(t *testing.T) {
	expected := `Start Date	End Date	Project	Channel	Budget	Actual Spend	Leads	Meetings	Bookings	Owner	CPL	CPA	Conversion Rate (%)
2024-01-01	2024-01-31	Launch	Email	1000	800	40	10	5	Ani	20	80	12.5
`

	var f strings.Builder
	var data = [][]any{
		{"Owner", "Start Date", "End Date", "Project", "Channel", "Budget", "Actual Spend", "Leads", "Meetings", "Bookings"},
		{"Ani", "2024-01-01", "2024-01-31", "Launch", "Email", 1000.0, 800.0, 40.0, 10.0, 5.0},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if err := MakeTSV(&f, table); err != nil {
		t.Fatalf("Unexpected error returned from MakeTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}
