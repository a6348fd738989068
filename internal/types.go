package internal

import (
	"strconv"
	"time"
)

type CellKind string

const (
	CellEmpty  CellKind = "empty"
	CellString CellKind = "string"
	CellNumber CellKind = "number"
)

// Cell is one loosely-typed spreadsheet value. Equality checks in the engine
// go through Canonical, never through the raw fields.
type Cell struct {
	Kind CellKind `json:"kind"`
	Str  string   `json:"str,omitempty"`
	Num  float64  `json:"num,omitempty"`
}

func StringCell(v string) Cell { return Cell{Kind: CellString, Str: v} }

func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }

func EmptyCell() Cell { return Cell{Kind: CellEmpty} }

// Canonical renders a cell to its comparison form. Numbers use the shortest
// decimal representation, so an xlsx 1 and a stored "1" compare equal.
// Empty cells render as "", which makes empty-vs-empty compare equal on
// both sides of a join miss.
func (c Cell) Canonical() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellString:
		return c.Str
	default:
		return ""
	}
}

func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty || (c.Kind == CellString && c.Str == "")
}

type Origin string

const (
	OriginAutomatic Origin = "automatic"
	OriginManual    Origin = "manual"
)

// TableSource is a loaded table plus provenance. Instances are replaced
// wholesale on every successful load and never mutated in place.
type TableSource struct {
	Table    Table      `json:"table"`
	LoadedAt *time.Time `json:"loadedAt"`
	Origin   Origin     `json:"origin"`
}

// DirectoryContact is one projected row of the directory lookup result.
type DirectoryContact struct {
	CompanyID      Cell `json:"companyId"`
	CompanyName    Cell `json:"companyName"`
	GumReferenceID Cell `json:"gumReferenceId"`
}

// LookupResult carries both the raw match count and the per-company
// deduplicated records, so callers can report "N results, M unique".
type LookupResult struct {
	Records     []DirectoryContact `json:"records"`
	RawCount    int                `json:"rawCount"`
	UniqueCount int                `json:"uniqueCount"`
}
