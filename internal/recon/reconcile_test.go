package recon

import (
	"testing"

	"gumcheck/internal"
)

func sc(v string) internal.Cell  { return internal.StringCell(v) }
func nc(v float64) internal.Cell { return internal.NumberCell(v) }
func ec() internal.Cell          { return internal.EmptyCell() }

func tbl(columns []string, rows ...[]internal.Cell) internal.Table {
	return internal.Table{Columns: columns, Rows: rows}
}

func activityTbl(rows ...[]internal.Cell) internal.Table {
	return tbl([]string{"Activity Company / ID", "Assign To (Handler 1)", "Assign To (Handler 2)", "Notes"}, rows...)
}

func contactTbl(rows ...[]internal.Cell) internal.Table {
	return tbl([]string{"Name", "ID", "GUM Reference ID", "Lead Sales Rep 1", "Lead Sales Rep 2"}, rows...)
}

func TestReconcileDedupeFirstWins(t *testing.T) {
	activity := activityTbl(
		[]internal.Cell{nc(1), sc("A"), sc("B"), sc("first")},
		[]internal.Cell{nc(1), sc("Z"), sc("Z"), sc("dropped duplicate")},
	)
	contact := contactTbl(
		[]internal.Cell{sc("Acme"), nc(1), sc("GUM-1"), sc("A"), sc("B")},
	)

	out, err := Reconcile(activity, contact)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 1 {
		t.Fatalf("rows=%d", len(out.Rows))
	}
	if got := out.Cell(0, 1).Canonical(); got != "A" {
		t.Fatalf("handler1=%q, duplicate row not dropped first-wins", got)
	}
	if got := out.Cell(0, 8).Canonical(); got != "YES" {
		t.Fatalf("match=%q", got)
	}
}

func TestReconcileLeftJoinCompleteness(t *testing.T) {
	activity := activityTbl(
		[]internal.Cell{nc(1), sc("Alice"), sc("Bob"), ec()},
		[]internal.Cell{nc(2), sc("Carol"), sc("Dave"), ec()},
	)
	contact := contactTbl(
		[]internal.Cell{sc("Acme"), nc(1), sc("GUM-1"), sc("Alice"), sc("Bob")},
	)

	out, err := Reconcile(activity, contact)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 2 {
		t.Fatalf("rows=%d", len(out.Rows))
	}

	// Row without a contact match survives with empty contact fields.
	if got := out.Cell(1, 0).Canonical(); got != "2" {
		t.Fatalf("companyId=%q", got)
	}
	for col := 3; col <= 7; col++ {
		if !out.Cell(1, col).IsEmpty() {
			t.Fatalf("contact col %d not empty: %+v", col, out.Cell(1, col))
		}
	}
	if got := out.Cell(1, 8).Canonical(); got != "NO" {
		t.Fatalf("match=%q", got)
	}
}

func TestReconcileHandlerMatch(t *testing.T) {
	cases := []struct {
		name     string
		leadRep2 internal.Cell
		want     string
	}{
		{name: "both equal", leadRep2: sc("Bob"), want: "YES"},
		{name: "second differs", leadRep2: sc("Bobby"), want: "NO"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			activity := activityTbl([]internal.Cell{nc(7), sc("Alice"), sc("Bob"), ec()})
			contact := contactTbl([]internal.Cell{sc("Acme"), nc(7), sc("GUM-7"), sc("Alice"), tc.leadRep2})

			out, err := Reconcile(activity, contact)
			if err != nil {
				t.Fatal(err)
			}
			if got := out.Cell(0, 8).Canonical(); got != tc.want {
				t.Fatalf("match=%q want=%q", got, tc.want)
			}
		})
	}
}

func TestReconcileNumericKeyCoercion(t *testing.T) {
	// Activity carries the ID as a string, contact as an xlsx number.
	activity := activityTbl([]internal.Cell{sc("42"), sc("Alice"), sc("Bob"), ec()})
	contact := contactTbl([]internal.Cell{sc("Acme"), nc(42), sc("GUM-42"), sc("Alice"), sc("Bob")})

	out, err := Reconcile(activity, contact)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.Cell(0, 3).Canonical(); got != "Acme" {
		t.Fatalf("join missed across cell kinds: name=%q", got)
	}
	if got := out.Cell(0, 8).Canonical(); got != "YES" {
		t.Fatalf("match=%q", got)
	}
}

func TestReconcileOutputColumnOrder(t *testing.T) {
	out, err := Reconcile(activityTbl(), contactTbl())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"Activity Company / ID", "Assign To (Handler 1)", "Assign To (Handler 2)",
		"Name", "ID", "GUM Reference ID", "Lead Sales Rep 1", "Lead Sales Rep 2",
		"Check Handler Match",
	}
	if len(out.Columns) != len(want) {
		t.Fatalf("columns=%v", out.Columns)
	}
	for i, name := range want {
		if out.Columns[i] != name {
			t.Fatalf("column %d = %q want %q", i, out.Columns[i], name)
		}
	}
}

func TestReconcileMissingContactColumnFailsLoudly(t *testing.T) {
	activity := activityTbl([]internal.Cell{nc(1), sc("A"), sc("B"), ec()})
	broken := tbl([]string{"Name", "ID", "GUM Reference ID", "Lead Sales Rep 1"})

	if _, err := Reconcile(activity, broken); err == nil {
		t.Fatal("expected projection error for missing Lead Sales Rep 2")
	}
}
