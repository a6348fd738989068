package tabular

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"gumcheck/internal"
)

// Decode turns a byte stream into a Table. The format is sniffed: xlsx
// containers start with a zip signature, everything else is tried as an
// HTML table export. The first row is the header row; header names are
// taken verbatim, since downstream column checks are whitespace-exact.
func Decode(blob []byte) (internal.Table, error) {
	if looksLikeHTML(blob) {
		return decodeHTML(blob)
	}
	return decodeXLSX(blob)
}

func looksLikeHTML(blob []byte) bool {
	if bytes.HasPrefix(blob, []byte("PK")) {
		return false
	}
	head := strings.ToLower(string(blob[:min(len(blob), 2048)]))
	return strings.Contains(head, "<table") || strings.Contains(head, "<html")
}

func decodeXLSX(blob []byte) (internal.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return internal.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return internal.Table{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return internal.Table{}, fmt.Errorf("sheet %s has no header row", sheet)
	}

	table := internal.Table{Columns: append([]string(nil), rows[0]...)}
	for _, row := range rows[1:] {
		table.Rows = append(table.Rows, toCells(row, len(table.Columns)))
	}
	return table, nil
}

func decodeHTML(blob []byte) (internal.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return internal.Table{}, fmt.Errorf("parse html: %w", err)
	}

	table := doc.Find("table").First()
	rows := table.Find("tr")
	if rows.Length() == 0 {
		return internal.Table{}, fmt.Errorf("no table rows in html input")
	}

	out := internal.Table{}
	rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		out.Columns = append(out.Columns, strings.TrimSpace(cell.Text()))
	})

	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		out.Rows = append(out.Rows, toCells(cells, len(out.Columns)))
	})

	return out, nil
}

func toCells(raw []string, width int) []internal.Cell {
	cells := make([]internal.Cell, 0, width)
	for i := 0; i < width; i++ {
		value := ""
		if i < len(raw) {
			value = raw[i]
		}
		cells = append(cells, classifyCell(value))
	}
	return cells
}

func classifyCell(value string) internal.Cell {
	if value == "" {
		return internal.EmptyCell()
	}
	if parsed, err := strconv.ParseFloat(value, 64); err == nil {
		return internal.NumberCell(parsed)
	}
	return internal.StringCell(value)
}
