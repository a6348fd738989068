package recon

import (
	"gumcheck/internal"
)

const (
	colCompanyID = "Activity Company / ID"
	colHandler1  = "Assign To (Handler 1)"
	colHandler2  = "Assign To (Handler 2)"

	colName      = "Name"
	colContactID = "ID"
	colGumRef    = "GUM Reference ID"
	colLeadRep1  = "Lead Sales Rep 1"
	colLeadRep2  = "Lead Sales Rep 2"

	colHandlerMatch = "Check Handler Match"
)

var contactColumns = []string{colName, colContactID, colGumRef, colLeadRep1, colLeadRep2}

var outputColumns = []string{
	colCompanyID, colHandler1, colHandler2,
	colName, colContactID, colGumRef, colLeadRep1, colLeadRep2,
	colHandlerMatch,
}

// Reconcile left-joins the activity table to the contact table by company ID
// and flags whether the assigned handlers match the lead sales reps. Pure
// function, no I/O. A missing required column on either side is a hard error.
//
// Activity rows are deduplicated by company ID, first occurrence wins. The
// contact side is not deduplicated: callers are responsible for contact
// uniqueness; a duplicated contact ID resolves to its first row here.
func Reconcile(activity, contact internal.Table) (internal.Table, error) {
	act, err := activity.Project(ActivityRequiredColumns)
	if err != nil {
		return internal.Table{}, err
	}
	act = dedupeByFirstColumn(act)

	con, err := contact.Project(contactColumns)
	if err != nil {
		return internal.Table{}, err
	}

	contactByID := map[string]int{}
	for r := range con.Rows {
		key := con.Cell(r, 1).Canonical()
		if _, seen := contactByID[key]; !seen {
			contactByID[key] = r
		}
	}

	out := internal.Table{Columns: append([]string(nil), outputColumns...), Rows: make([][]internal.Cell, 0, len(act.Rows))}
	for r := range act.Rows {
		companyID := act.Cell(r, 0)
		handler1 := act.Cell(r, 1)
		handler2 := act.Cell(r, 2)

		name, contactID, gumRef := internal.EmptyCell(), internal.EmptyCell(), internal.EmptyCell()
		leadRep1, leadRep2 := internal.EmptyCell(), internal.EmptyCell()
		if cr, ok := contactByID[companyID.Canonical()]; ok {
			name = con.Cell(cr, 0)
			contactID = con.Cell(cr, 1)
			gumRef = con.Cell(cr, 2)
			leadRep1 = con.Cell(cr, 3)
			leadRep2 = con.Cell(cr, 4)
		}

		out.Rows = append(out.Rows, []internal.Cell{
			companyID, handler1, handler2,
			name, contactID, gumRef, leadRep1, leadRep2,
			internal.StringCell(handlerMatch(handler1, handler2, leadRep1, leadRep2)),
		})
	}

	return out, nil
}

// handlerMatch is a strict two-field AND over canonical strings, not a fuzzy
// or case-insensitive comparison.
func handlerMatch(handler1, handler2, leadRep1, leadRep2 internal.Cell) string {
	if handler1.Canonical() == leadRep1.Canonical() && handler2.Canonical() == leadRep2.Canonical() {
		return "YES"
	}
	return "NO"
}

func dedupeByFirstColumn(t internal.Table) internal.Table {
	seen := map[string]struct{}{}
	out := internal.Table{Columns: t.Columns, Rows: make([][]internal.Cell, 0, len(t.Rows))}
	for r := range t.Rows {
		key := t.Cell(r, 0).Canonical()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out.Rows = append(out.Rows, t.Rows[r])
	}
	return out
}
