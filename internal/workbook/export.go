package workbook

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"police-personnel/internal/model"
)

// Sheet and file names
const (
	ExportSheet      = "Personnel"
	TemplateSheet    = "Template"
	TemplateFilename = "template_personnel.xlsx"
)

// ExportFilename personnel_YYYY-MM-DD.xlsx for the given day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("personnel_%s.xlsx", now.Format(isoLayout))
}

// AgeAt whole years elapsed from birth to ref.
func AgeAt(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() || (ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}

// ExportRow renders p in column order. Dates are dd/mm/yyyy, age is derived
// from the birth date at now, absent values are empty cells.
func ExportRow(p *model.Personnel, now time.Time) []any {
	var age any = ""
	if p.BirthDate != nil && !p.BirthDate.IsZero() {
		age = AgeAt(*p.BirthDate, now)
	}

	return []any{
		intCell(p.Seniority),
		strCell(p.Rank),
		strCell(p.FullName),
		intCell(p.PosCodeID),
		strCell(p.Position),
		strCell(p.PositionNumber),
		strCell(p.ActingAs),
		FormatDate(p.LastAppointment),
		FormatDate(p.CurrentRankSince),
		FormatDate(p.EnrollmentDate),
		FormatDate(p.BirthDate),
		strCell(p.Education),
		strCell(p.NationalID),
		strCell(p.Unit),
		FormatDate(p.RetirementDate),
		intCell(p.YearsOfService),
		age,
		strCell(p.TrainingLocation),
		strCell(p.TrainingCourse),
		strCell(p.Notes),
	}
}

// ExportRows renders every record; an empty slice yields no data rows.
func ExportRows(list []model.Personnel, now time.Time) [][]any {
	rows := make([][]any, 0, len(list))
	for i := range list {
		rows = append(rows, ExportRow(&list[i], now))
	}
	return rows
}

// WriteWorkbook writes a single-sheet workbook: a bold header row followed by rows.
func WriteWorkbook(sheet string, rows [][]any) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	headers := Headers()
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	_ = f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(sheet, "A", lastCol, 18)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf, nil
}

// TemplateRows sample rows for the import template: one occupied position and one vacancy.
func TemplateRows() [][]any {
	return [][]any{
		{1, "พ.ต.อ.", "นายสมชาย ใจดี", 6, "ผู้กำกับการ", "001/2560", "", "01/10/2565", "01/10/2563", "01/04/2540", "15/06/2518", "ปริญญาโท", "1234567890123", "กองบังคับการ 1", "30/09/2578", 25, "", "ตท.45", "นรต.51", ""},
		{"", "", "", 7, "รองผู้บังคับการ", "002/2560", "", "", "", "", "", "", "", "กองกำลัง 1", "", "", "", "", "", "ตำแหน่งว่าง"},
	}
}

// WriteTemplate builds the import template workbook.
func WriteTemplate() (*bytes.Buffer, error) {
	return WriteWorkbook(TemplateSheet, TemplateRows())
}

func strCell(s *string) any {
	if s == nil {
		return ""
	}
	return *s
}

func intCell(n *int) any {
	if n == nil {
		return ""
	}
	return *n
}
