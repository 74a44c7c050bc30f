package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

var (
	zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// ErrUnknownFormat the buffer is neither an xlsx nor an xls workbook.
var ErrUnknownFormat = errors.New("unrecognized workbook format")

// ErrTooManyRows the workbook exceeds the configured row cap.
var ErrTooManyRows = errors.New("too many data rows")

// ParseError a workbook that cannot be read at all. It ends the import
// session; it is never a per-row problem.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot read workbook: %s: %v", e.Reason, e.Err)
	}
	return "cannot read workbook: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read parses the first worksheet of an xlsx or xls buffer. The first row is
// the header; every following non-blank row becomes a RawRow. maxRows <= 0
// disables the row cap.
func Read(data []byte, maxRows int) ([]RawRow, error) {
	var (
		grid [][]any
		err  error
	)
	switch {
	case bytes.HasPrefix(data, zipMagic):
		grid, err = readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		grid, err = readXLS(data)
	default:
		return nil, &ParseError{Reason: "unsupported file", Err: ErrUnknownFormat}
	}
	if err != nil {
		return nil, err
	}

	if len(grid) == 0 {
		return nil, &ParseError{Reason: "worksheet is empty"}
	}

	headers := make([]string, len(grid[0]))
	named := 0
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(toText(h))
		if headers[i] != "" {
			named++
		}
	}
	if named == 0 {
		return nil, &ParseError{Reason: "missing header row"}
	}

	rows := make([]RawRow, 0, len(grid)-1)
	for i := 1; i < len(grid); i++ {
		values := make(map[string]any, len(headers))
		for j, cell := range grid[i] {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			if _, dup := values[headers[j]]; dup {
				continue
			}
			if cell == nil {
				continue
			}
			if s, ok := cell.(string); ok && strings.TrimSpace(s) == "" {
				continue
			}
			values[headers[j]] = cell
		}
		if len(values) == 0 {
			continue
		}
		rows = append(rows, RawRow{Row: i + 1, Values: values})
		if maxRows > 0 && len(rows) > maxRows {
			return nil, &ParseError{Reason: fmt.Sprintf("more than %d data rows", maxRows), Err: ErrTooManyRows}
		}
	}

	return rows, nil
}

// readXLSX returns raw cell values of the first sheet. Numeric cells are
// float64 so serial dates stay numeric; everything else is text.
func readXLSX(data []byte) ([][]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: "invalid xlsx", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ParseError{Reason: "no worksheet found"}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ParseError{Reason: "read worksheet", Err: err}
	}

	grid := make([][]any, len(rows))
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, value := range row {
			cells[j] = value
			if value == "" {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				continue
			}
			typ, err := f.GetCellType(sheet, ref)
			if err != nil {
				continue
			}
			if typ == excelize.CellTypeUnset || typ == excelize.CellTypeNumber {
				if n, err := strconv.ParseFloat(value, 64); err == nil {
					cells[j] = n
				}
			}
		}
		grid[i] = cells
	}
	return grid, nil
}

// readXLS reads a legacy BIFF workbook. The xls reader yields text only, so
// a cell becomes float64 only when its text is exactly what a number would
// render to; anything else ("1.10", "0123", "NaN") stays text.
func readXLS(data []byte) (grid [][]any, err error) {
	defer func() {
		if r := recover(); r != nil {
			grid, err = nil, &ParseError{Reason: "invalid xls", Err: fmt.Errorf("%v", r)}
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &ParseError{Reason: "invalid xls", Err: err}
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, &ParseError{Reason: "no worksheet found"}
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, &ParseError{Reason: "no worksheet found"}
	}

	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := xlsRow(sheet, i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}
		cells := make([]any, row.LastCol()+1)
		for j := row.FirstCol(); j <= row.LastCol(); j++ {
			cells[j] = xlsValue(row.Col(j))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

// xlsRow returns nil for rows the sheet has no record of; the xls package
// panics on those instead.
func xlsRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func xlsValue(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return s
	}
	if strconv.FormatFloat(n, 'f', -1, 64) != t {
		return s
	}
	return n
}
