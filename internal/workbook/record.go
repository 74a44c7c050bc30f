package workbook

import (
	"strings"
)

// RawRow one sheet row keyed by header. Values are string or float64.
// Row is the 1-based row number in the sheet (the header is row 1).
type RawRow struct {
	Row    int            `json:"row"`
	Values map[string]any `json:"values"`
}

// Record canonical personnel fields mapped from a RawRow. Dates are YYYY-MM-DD.
type Record struct {
	Seniority        *int    `json:"seniority,omitempty"`
	Rank             *string `json:"rank,omitempty"`
	FullName         *string `json:"full_name,omitempty"`
	PosCodeID        *int    `json:"pos_code_id,omitempty"`
	Position         *string `json:"position,omitempty"`
	PositionNumber   *string `json:"position_number,omitempty"`
	ActingAs         *string `json:"acting_as,omitempty"`
	LastAppointment  *string `json:"last_appointment,omitempty"`
	CurrentRankSince *string `json:"current_rank_since,omitempty"`
	EnrollmentDate   *string `json:"enrollment_date,omitempty"`
	BirthDate        *string `json:"birth_date,omitempty"`
	Education        *string `json:"education,omitempty"`
	NationalID       *string `json:"national_id,omitempty"`
	Unit             *string `json:"unit,omitempty"`
	RetirementDate   *string `json:"retirement_date,omitempty"`
	YearsOfService   *int    `json:"years_of_service,omitempty"`
	Age              *int    `json:"age,omitempty"`
	TrainingLocation *string `json:"training_location,omitempty"`
	TrainingCourse   *string `json:"training_course,omitempty"`
	Notes            *string `json:"notes,omitempty"`
}

// Label identifies the record in error messages: full name, else position, else "Unknown".
func (r *Record) Label() string {
	if r.FullName != nil && strings.TrimSpace(*r.FullName) != "" {
		return *r.FullName
	}
	if r.Position != nil && strings.TrimSpace(*r.Position) != "" {
		return *r.Position
	}
	return "Unknown"
}

func (r *Record) textField(field string) **string {
	switch field {
	case "rank":
		return &r.Rank
	case "full_name":
		return &r.FullName
	case "position":
		return &r.Position
	case "position_number":
		return &r.PositionNumber
	case "acting_as":
		return &r.ActingAs
	case "education":
		return &r.Education
	case "unit":
		return &r.Unit
	case "training_location":
		return &r.TrainingLocation
	case "training_course":
		return &r.TrainingCourse
	case "notes":
		return &r.Notes
	case "national_id":
		return &r.NationalID
	case "last_appointment":
		return &r.LastAppointment
	case "current_rank_since":
		return &r.CurrentRankSince
	case "enrollment_date":
		return &r.EnrollmentDate
	case "birth_date":
		return &r.BirthDate
	case "retirement_date":
		return &r.RetirementDate
	}
	return nil
}

func (r *Record) intField(field string) **int {
	switch field {
	case "seniority":
		return &r.Seniority
	case "pos_code_id":
		return &r.PosCodeID
	case "years_of_service":
		return &r.YearsOfService
	case "age":
		return &r.Age
	}
	return nil
}

// MapRow converts raw cell values to a Record using the column table.
// Integers that do not parse and unparseable dates are left absent.
func MapRow(raw RawRow) Record {
	var rec Record
	for _, col := range Columns {
		v, ok := raw.Values[col.Header]
		if !ok {
			continue
		}
		switch col.Kind {
		case KindInt:
			if n, ok := toInt(v); ok {
				*rec.intField(col.Field) = &n
			}
		case KindDate:
			if d, ok := NormalizeDate(v); ok {
				*rec.textField(col.Field) = &d
			}
		case KindNationalID:
			if s := StripNationalID(toText(v)); s != "" {
				*rec.textField(col.Field) = &s
			}
		default:
			if s := strings.TrimSpace(toText(v)); s != "" {
				*rec.textField(col.Field) = &s
			}
		}
	}
	return rec
}
