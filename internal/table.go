package internal

import "fmt"

// Table is an in-memory grid: named columns and positionally aligned rows.
// Column order matters for display only; rows shorter than the column set
// read as empty cells.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]Cell `json:"rows"`
}

func (t Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

func (t Table) Cell(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return EmptyCell()
	}
	cells := t.Rows[row]
	if col < 0 || col >= len(cells) {
		return EmptyCell()
	}
	return cells[col]
}

// Project returns a copy of the table narrowed to exactly the named columns,
// in the given order. A missing column is a hard error, never coerced to
// empty values.
func (t Table) Project(names []string) (Table, error) {
	indexes := make([]int, 0, len(names))
	for _, name := range names {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			return Table{}, fmt.Errorf("column not found: %s", name)
		}
		indexes = append(indexes, idx)
	}

	out := Table{Columns: append([]string(nil), names...), Rows: make([][]Cell, 0, len(t.Rows))}
	for r := range t.Rows {
		row := make([]Cell, 0, len(indexes))
		for _, idx := range indexes {
			row = append(row, t.Cell(r, idx))
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
