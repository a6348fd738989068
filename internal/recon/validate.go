package recon

import (
	"strings"

	"gumcheck/internal"
)

// ActivityRequiredColumns gates acceptance of an uploaded activity table.
// Matching is exact: case and whitespace significant.
var ActivityRequiredColumns = []string{
	"Activity Company / ID",
	"Assign To (Handler 1)",
	"Assign To (Handler 2)",
}

type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

// ValidateActivity reports the required columns absent from the table, in
// required-column order. Side-effect free.
func ValidateActivity(t internal.Table) error {
	var missing []string
	for _, name := range ActivityRequiredColumns {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}
