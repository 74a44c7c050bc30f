package workbook

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"police-personnel/internal/model"
)

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 33, AgeAt(birth, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 34, AgeAt(birth, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 33, AgeAt(birth, time.Date(2024, 5, 30, 0, 0, 0, 0, time.UTC)))
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "personnel_2025-03-07.xlsx", ExportFilename(time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)))
}

func TestExportRow(t *testing.T) {
	p := &model.Personnel{
		Seniority:      ptr(3),
		Rank:           ptr("พ.ต.อ."),
		FullName:       ptr("นายสมชาย ใจดี"),
		PosCodeID:      ptr(6),
		Position:       ptr("ผู้กำกับการ"),
		BirthDate:      date(1990, time.June, 15),
		NationalID:     ptr("1234567890123"),
		RetirementDate: date(2050, time.September, 30),
		Age:            ptr(99),
	}

	row := ExportRow(p, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
	require.Len(t, row, len(Columns))

	assert.Equal(t, 3, row[0])
	assert.Equal(t, "พ.ต.อ.", row[1])
	assert.Equal(t, 6, row[3])
	assert.Equal(t, "", row[5], "absent position number")
	assert.Equal(t, "", row[7], "absent date")
	assert.Equal(t, "15/06/1990", row[10])
	assert.Equal(t, "30/09/2050", row[14])
	assert.Equal(t, 33, row[16], "age is derived, not the stored value")
}

func TestExportRow_NoBirthDate(t *testing.T) {
	row := ExportRow(&model.Personnel{Position: ptr("ว่าง")}, time.Now())
	assert.Equal(t, "", row[16])
	assert.Equal(t, "", row[0])
}

func TestWriteWorkbook_HeaderOnly(t *testing.T) {
	buf, err := WriteWorkbook(ExportSheet, ExportRows(nil, time.Now()))
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, ExportSheet, f.GetSheetName(0))
	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers(), rows[0])
}

func TestWriteWorkbook_RoundTripsThroughReader(t *testing.T) {
	list := []model.Personnel{
		{FullName: ptr("ก"), Position: ptr("ผกก."), BirthDate: date(1980, time.January, 2), Seniority: ptr(1)},
		{Position: ptr("รอง ผกก."), PosCodeID: ptr(9)},
	}
	buf, err := WriteWorkbook(ExportSheet, ExportRows(list, time.Now()))
	require.NoError(t, err)

	rows, err := Read(buf.Bytes(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	valid := ValidateRows(rows, false)
	assert.True(t, valid[0].Valid())
	assert.True(t, valid[1].Valid())
	assert.Equal(t, "1980-01-02", *valid[0].Record.BirthDate)
	assert.Equal(t, 9, *valid[1].Record.PosCodeID)
}

func TestWriteTemplate(t *testing.T) {
	buf, err := WriteTemplate()
	require.NoError(t, err)

	rows, err := Read(buf.Bytes(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	validated := ValidateRows(rows, true)
	for _, r := range validated {
		assert.True(t, r.Valid(), "template row %d: %s", r.Row, r.Error)
	}
	assert.Equal(t, "1975-06-15", *validated[0].Record.BirthDate)
	assert.Nil(t, validated[1].Record.FullName, "second sample is a vacancy")
}
