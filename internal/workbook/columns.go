// Package workbook reads personnel spreadsheets, validates and maps their rows,
// drives the sequential import, and renders personnel back to a workbook.
package workbook

// Kind value type of a column after mapping.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindDate
	KindNationalID
)

// Column one header of the personnel sheet and the canonical field it maps to.
type Column struct {
	Header string
	Field  string
	Kind   Kind
}

// Source-locale headers, in export order.
const (
	HeaderSeniority        = "อาวุโส"
	HeaderRank             = "ยศ"
	HeaderFullName         = "ชื่อ-สกุล"
	HeaderPosCode          = "POSCODE"
	HeaderPosition         = "ตำแหน่ง"
	HeaderPositionNumber   = "เลขตำแหน่ง"
	HeaderActingAs         = "ทำหน้าที่"
	HeaderLastAppointment  = "แต่งตั้งครั้งสุดท้าย"
	HeaderCurrentRankSince = "ระดับนี้เมื่อ"
	HeaderEnrollmentDate   = "บรรจุ"
	HeaderBirthDate        = "วันเกิด"
	HeaderEducation        = "คุณวุฒิ"
	HeaderNationalID       = "เลขประจำตัวประชาชน"
	HeaderUnit             = "หน่วย"
	HeaderRetirementDate   = "เกษียณ"
	HeaderYearsOfService   = "จำนวนปี"
	HeaderAge              = "อายุ"
	HeaderTrainingLocation = "ตท."
	HeaderTrainingCourse   = "นรต."
	HeaderNotes            = "หมายเหตุ/เงื่อนไข"
)

// Columns fixed column table shared by import and export.
var Columns = []Column{
	{HeaderSeniority, "seniority", KindInt},
	{HeaderRank, "rank", KindText},
	{HeaderFullName, "full_name", KindText},
	{HeaderPosCode, "pos_code_id", KindInt},
	{HeaderPosition, "position", KindText},
	{HeaderPositionNumber, "position_number", KindText},
	{HeaderActingAs, "acting_as", KindText},
	{HeaderLastAppointment, "last_appointment", KindDate},
	{HeaderCurrentRankSince, "current_rank_since", KindDate},
	{HeaderEnrollmentDate, "enrollment_date", KindDate},
	{HeaderBirthDate, "birth_date", KindDate},
	{HeaderEducation, "education", KindText},
	{HeaderNationalID, "national_id", KindNationalID},
	{HeaderUnit, "unit", KindText},
	{HeaderRetirementDate, "retirement_date", KindDate},
	{HeaderYearsOfService, "years_of_service", KindInt},
	{HeaderAge, "age", KindInt},
	{HeaderTrainingLocation, "training_location", KindText},
	{HeaderTrainingCourse, "training_course", KindText},
	{HeaderNotes, "notes", KindText},
}

// Headers returns the header row in column order.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}
