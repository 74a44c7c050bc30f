package workbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(values map[string]any) RawRow {
	return RawRow{Row: 2, Values: values}
}

func TestValidate_PositionRequired(t *testing.T) {
	rec := MapRow(raw(map[string]any{HeaderFullName: "สมชาย"}))
	assert.ErrorIs(t, Validate(&rec, false), ErrPositionRequired)

	for _, header := range []string{HeaderPosition, HeaderPositionNumber, HeaderPosCode} {
		var v any = "x"
		if header == HeaderPosCode {
			v = 7.0
		}
		rec := MapRow(raw(map[string]any{header: v}))
		assert.NoError(t, Validate(&rec, false), header)
	}
}

func TestValidate_NationalIDLength(t *testing.T) {
	tests := []struct {
		id   any
		want error
	}{
		{"1234567890123", nil},
		{"1-2345-67890-12-3", nil},
		{"1 2345 67890 12 3", nil},
		{1234567890123.0, nil},
		{"123456789012", ErrNationalIDLength},
		{"12345678901234", ErrNationalIDLength},
		{"ABCDEFGHIJKLM", nil},
		{"๑๒๓๔๕๖๗๘๙๐๑๒๓", nil},
		{"กขคงจฉชซฌญฎฏฐ", nil},
		{"๑๒๓๔๕๖๗๘๙๐๑๒", ErrNationalIDLength},
		{"   ", nil},
	}

	for _, tt := range tests {
		rec := MapRow(raw(map[string]any{HeaderPosition: "ผกก.", HeaderNationalID: tt.id}))
		err := Validate(&rec, false)
		if tt.want == nil {
			assert.NoError(t, err, "%v", tt.id)
		} else {
			assert.ErrorIs(t, err, tt.want, "%v", tt.id)
		}
	}
}

func TestValidate_StrictDigits(t *testing.T) {
	rec := MapRow(raw(map[string]any{HeaderPosition: "ผกก.", HeaderNationalID: "ABCDEFGHIJKLM"}))
	assert.ErrorIs(t, Validate(&rec, true), ErrNationalIDDigits)

	rec = MapRow(raw(map[string]any{HeaderPosition: "ผกก.", HeaderNationalID: "1-2345-67890-12-3"}))
	assert.NoError(t, Validate(&rec, true))

	// Thai numerals are not ASCII digits
	rec = MapRow(raw(map[string]any{HeaderPosition: "ผกก.", HeaderNationalID: "๑๒๓๔๕๖๗๘๙๐๑๒๓"}))
	assert.ErrorIs(t, Validate(&rec, true), ErrNationalIDDigits)
}

func TestCheckPersonnel_CountsCharacters(t *testing.T) {
	assert.NoError(t, CheckPersonnel(true, "๑-๒๓๔๕-๖๗๘๙๐-๑๒-๓", false))
	assert.ErrorIs(t, CheckPersonnel(true, "๑๒๓๔", false), ErrNationalIDLength)
}

func TestValidate_PositionCheckedBeforeNationalID(t *testing.T) {
	rec := MapRow(raw(map[string]any{HeaderNationalID: "123"}))
	assert.ErrorIs(t, Validate(&rec, false), ErrPositionRequired)
}

func TestValidateRows(t *testing.T) {
	rows := []RawRow{
		{Row: 2, Values: map[string]any{HeaderPosition: "ผกก."}},
		{Row: 3, Values: map[string]any{HeaderFullName: "ไม่มีตำแหน่ง"}},
		{Row: 4, Values: map[string]any{HeaderPosCode: 8.0, HeaderNationalID: "12"}},
	}

	got := ValidateRows(rows, false)
	require.Len(t, got, 3)

	assert.Equal(t, StatusValid, got[0].Status)
	assert.Equal(t, StatusInvalid, got[1].Status)
	assert.Equal(t, ErrPositionRequired.Error(), got[1].Error)
	assert.Equal(t, StatusInvalid, got[2].Status)
	assert.Equal(t, ErrNationalIDLength.Error(), got[2].Error)
	assert.Equal(t, 4, got[2].Row)

	valid, invalid := Count(got)
	assert.Equal(t, 1, valid)
	assert.Equal(t, 2, invalid)
}

func TestMapRow(t *testing.T) {
	rec := MapRow(raw(map[string]any{
		HeaderSeniority:      "12",
		HeaderRank:           " พ.ต.อ. ",
		HeaderFullName:       "นายสมชาย ใจดี",
		HeaderPosCode:        6.0,
		HeaderPosition:       "ผู้กำกับการ",
		HeaderBirthDate:      "15/06/2518",
		HeaderEnrollmentDate: 35521.0,
		HeaderNationalID:     "1-2345-67890-12-3",
		HeaderYearsOfService: "25 ปี",
		HeaderAge:            "ไม่ทราบ",
		HeaderRetirementDate: "bad",
		HeaderNotes:          "",
	}))

	require.NotNil(t, rec.Seniority)
	assert.Equal(t, 12, *rec.Seniority)
	assert.Equal(t, "พ.ต.อ.", *rec.Rank)
	assert.Equal(t, 6, *rec.PosCodeID)
	assert.Equal(t, "1975-06-15", *rec.BirthDate)
	assert.Equal(t, "1997-04-01", *rec.EnrollmentDate)
	assert.Equal(t, "1234567890123", *rec.NationalID)
	assert.Equal(t, 25, *rec.YearsOfService)
	assert.Nil(t, rec.Age)
	assert.Nil(t, rec.RetirementDate)
	assert.Nil(t, rec.Notes)
	assert.Nil(t, rec.Unit)
}

func TestMapRow_IntRange(t *testing.T) {
	rec := MapRow(raw(map[string]any{
		HeaderSeniority:      1e20,
		HeaderAge:            "99999999999",
		HeaderYearsOfService: -3e10,
		HeaderPosCode:        2147483647.0,
	}))

	assert.Nil(t, rec.Seniority)
	assert.Nil(t, rec.Age)
	assert.Nil(t, rec.YearsOfService)
	require.NotNil(t, rec.PosCodeID)
	assert.Equal(t, 2147483647, *rec.PosCodeID)
}

func TestRecordLabel(t *testing.T) {
	name, pos := "สมชาย", "ผกก."
	assert.Equal(t, "สมชาย", (&Record{FullName: &name, Position: &pos}).Label())
	assert.Equal(t, "ผกก.", (&Record{Position: &pos}).Label())
	assert.Equal(t, "Unknown", (&Record{}).Label())
}
