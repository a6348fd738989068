package recon

import (
	"gumcheck/internal"
)

const (
	colEmail          = "Email*"
	colDirCompanyID   = "Contact Company/ID"
	colDirCompanyName = "Contact Company"
	colDirGumRef      = "Contact Company/GUM Reference ID"
)

var directoryColumns = []string{colEmail, colDirCompanyID, colDirCompanyName, colDirGumRef}

// LookupByEmail finds directory rows whose email equals the supplied value
// exactly (no case folding, no trimming). Duplicate rows are expected in the
// directory export; matches collapse by company ID, first occurrence first.
// Zero matches is a normal empty result, not an error.
func LookupByEmail(directory internal.Table, email string) (internal.LookupResult, error) {
	dir, err := directory.Project(directoryColumns)
	if err != nil {
		return internal.LookupResult{}, err
	}

	result := internal.LookupResult{Records: []internal.DirectoryContact{}}
	seen := map[string]struct{}{}
	for r := range dir.Rows {
		if dir.Cell(r, 0).Canonical() != email {
			continue
		}
		result.RawCount++

		key := dir.Cell(r, 1).Canonical()
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		result.Records = append(result.Records, internal.DirectoryContact{
			CompanyID:      dir.Cell(r, 1),
			CompanyName:    dir.Cell(r, 2),
			GumReferenceID: dir.Cell(r, 3),
		})
	}

	result.UniqueCount = len(result.Records)
	return result, nil
}
