package recon

import (
	"errors"
	"testing"

	"gumcheck/internal"
)

func TestValidateActivityReportsMissingInRequiredOrder(t *testing.T) {
	table := internal.Table{Columns: []string{"Assign To (Handler 2)", "Something Else"}}

	err := ValidateActivity(table)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("unexpected error type: %v", err)
	}
	want := []string{"Activity Company / ID", "Assign To (Handler 1)"}
	if len(missing.Missing) != len(want) {
		t.Fatalf("missing=%v", missing.Missing)
	}
	for i, name := range want {
		if missing.Missing[i] != name {
			t.Fatalf("missing[%d]=%q want %q", i, missing.Missing[i], name)
		}
	}
}

func TestValidateActivityExactMatch(t *testing.T) {
	// Whitespace differences do not count as present.
	table := internal.Table{Columns: []string{"Activity Company /ID", "Assign To (Handler 1)", "Assign To (Handler 2)"}}
	if ValidateActivity(table) == nil {
		t.Fatal("whitespace-variant column accepted")
	}
}

func TestValidateActivityAcceptsSuperset(t *testing.T) {
	table := internal.Table{Columns: []string{
		"Extra", "Activity Company / ID", "Assign To (Handler 1)", "Assign To (Handler 2)", "More",
	}}
	if err := ValidateActivity(table); err != nil {
		t.Fatal(err)
	}
}
