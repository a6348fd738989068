package tabular

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"gumcheck/internal"
)

const exportSheet = "Processed Data"

// EncodeXLSX renders a table to xlsx bytes, headers on row one, cell types
// preserved (numbers stay numbers).
func EncodeXLSX(t internal.Table) ([]byte, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, exportSheet); err != nil {
		return nil, err
	}

	for i, h := range t.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, h)
	}

	for r := range t.Rows {
		for c := range t.Columns {
			value := t.Cell(r, c)
			if value.Kind == internal.CellEmpty {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			switch value.Kind {
			case internal.CellNumber:
				_ = f.SetCellValue(exportSheet, cell, value.Num)
			default:
				_ = f.SetCellValue(exportSheet, cell, value.Str)
			}
		}
	}

	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ExportTableToXLSX(t internal.Table, outputPath string) error {
	blob, err := EncodeXLSX(t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, blob, 0o644)
}
