package dto

import "police-personnel/internal/workbook"

// ── personnel ──

// PersonnelListRequest list and export filters
type PersonnelListRequest struct {
	Q    string `form:"q"    binding:"omitempty,max=100"`
	Rank string `form:"rank" binding:"omitempty,max=100"`
	Unit string `form:"unit" binding:"omitempty,max=100"`
}

// PersonnelRequest body of POST and PUT. Dates accept YYYY-MM-DD or dd/mm/yyyy
// (Buddhist or common era).
type PersonnelRequest struct {
	PersonnelCode    *string `json:"personnel_code"`
	Position         *string `json:"position"`
	PositionNumber   *string `json:"position_number"`
	PosCodeID        *int    `json:"pos_code_id"`
	ActingAs         *string `json:"acting_as"`
	FullName         *string `json:"full_name"`
	Rank             *string `json:"rank"`
	NationalID       *string `json:"national_id"`
	BirthDate        *string `json:"birth_date"`
	Seniority        *int    `json:"seniority"`
	YearsOfService   *int    `json:"years_of_service"`
	Age              *int    `json:"age"`
	Education        *string `json:"education"`
	Unit             *string `json:"unit"`
	TrainingLocation *string `json:"training_location"`
	TrainingCourse   *string `json:"training_course"`
	EnrollmentDate   *string `json:"enrollment_date"`
	CurrentRankSince *string `json:"current_rank_since"`
	LastAppointment  *string `json:"last_appointment"`
	RetirementDate   *string `json:"retirement_date"`
	Notes            *string `json:"notes"`
	// Version last seen by the client; omitted means overwrite unconditionally
	Version *int `json:"version"`
}

// FromRecord builds a request from an imported record.
func FromRecord(rec *workbook.Record) *PersonnelRequest {
	return &PersonnelRequest{
		Position:         rec.Position,
		PositionNumber:   rec.PositionNumber,
		PosCodeID:        rec.PosCodeID,
		ActingAs:         rec.ActingAs,
		FullName:         rec.FullName,
		Rank:             rec.Rank,
		NationalID:       rec.NationalID,
		BirthDate:        rec.BirthDate,
		Seniority:        rec.Seniority,
		YearsOfService:   rec.YearsOfService,
		Age:              rec.Age,
		Education:        rec.Education,
		Unit:             rec.Unit,
		TrainingLocation: rec.TrainingLocation,
		TrainingCourse:   rec.TrainingCourse,
		EnrollmentDate:   rec.EnrollmentDate,
		CurrentRankSince: rec.CurrentRankSince,
		LastAppointment:  rec.LastAppointment,
		RetirementDate:   rec.RetirementDate,
		Notes:            rec.Notes,
	}
}

// ── import ──

// ImportPreviewResponse rows read from an uploaded workbook, annotated
type ImportPreviewResponse struct {
	Filename string                  `json:"filename"`
	Total    int                     `json:"total"`
	Valid    int                     `json:"valid"`
	Invalid  int                     `json:"invalid"`
	Rows     []workbook.ValidatedRow `json:"rows"`
}

// ImportCommitRequest rows the operator kept after review
type ImportCommitRequest struct {
	Rows []workbook.RawRow `json:"rows" binding:"required,min=1,dive"`
}
