package workbook

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Row validation failures. Messages are shown to the operator as-is.
var (
	ErrPositionRequired = errors.New("position information required (position, position number or POSCODE)")
	ErrNationalIDLength = errors.New("national ID must be 13 digits")
	ErrNationalIDDigits = errors.New("national ID must contain digits only")
)

// Status validation outcome of a row
type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// ValidatedRow a RawRow with its mapped record and validation result.
type ValidatedRow struct {
	RawRow
	Record Record `json:"record"`
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Valid reports whether the row may be committed.
func (v *ValidatedRow) Valid() bool {
	return v.Status == StatusValid
}

// CheckPersonnel applies the record rules to already-extracted fields.
// nationalID may contain separators; an empty value is treated as absent.
// Length is counted in characters, so Thai numerals count one each.
func CheckPersonnel(hasPosition bool, nationalID string, strictDigits bool) error {
	if !hasPosition {
		return ErrPositionRequired
	}
	if strings.TrimSpace(nationalID) == "" {
		return nil
	}
	id := StripNationalID(nationalID)
	if utf8.RuneCountInString(id) != 13 {
		return ErrNationalIDLength
	}
	if strictDigits {
		for _, r := range id {
			if r < '0' || r > '9' {
				return ErrNationalIDDigits
			}
		}
	}
	return nil
}

// Validate checks a mapped record.
func Validate(rec *Record, strictDigits bool) error {
	hasPosition := nonEmpty(rec.Position) || nonEmpty(rec.PositionNumber) || rec.PosCodeID != nil
	nid := ""
	if rec.NationalID != nil {
		nid = *rec.NationalID
	}
	return CheckPersonnel(hasPosition, nid, strictDigits)
}

// ValidateRows maps and validates every row, preserving order.
func ValidateRows(rows []RawRow, strictDigits bool) []ValidatedRow {
	out := make([]ValidatedRow, 0, len(rows))
	for _, raw := range rows {
		vr := ValidatedRow{RawRow: raw, Record: MapRow(raw), Status: StatusValid}
		if err := Validate(&vr.Record, strictDigits); err != nil {
			vr.Status = StatusInvalid
			vr.Error = err.Error()
		}
		out = append(out, vr)
	}
	return out
}

// Count returns the number of valid and invalid rows.
func Count(rows []ValidatedRow) (valid, invalid int) {
	for i := range rows {
		if rows[i].Valid() {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}

func nonEmpty(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
