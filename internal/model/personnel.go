package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Personnel one position slot and, when filled, its holder (table personnel).
// A vacancy has position data but no person fields.
type Personnel struct {
	PersonnelID   string  `gorm:"type:uuid;primaryKey"       json:"id"`
	PersonnelCode *string `gorm:"type:varchar(50)"           json:"personnel_code,omitempty"`

	// position
	Position       *string `gorm:"type:varchar(255)" json:"position,omitempty"`
	PositionNumber *string `gorm:"type:varchar(100)" json:"position_number,omitempty"`
	PosCodeID      *int    `gorm:"index"             json:"pos_code_id,omitempty"`
	ActingAs       *string `gorm:"type:varchar(255)" json:"acting_as,omitempty"`

	// person
	FullName   *string    `gorm:"type:varchar(255)"            json:"full_name,omitempty"`
	Rank       *string    `gorm:"type:varchar(100);index"      json:"rank,omitempty"`
	NationalID *string    `gorm:"type:varchar(20);uniqueIndex" json:"national_id,omitempty"`
	BirthDate  *time.Time `gorm:"type:date"                    json:"birth_date,omitempty"`

	// career
	Seniority        *int       `gorm:"index"             json:"seniority,omitempty"`
	YearsOfService   *int       `json:"years_of_service,omitempty"`
	Age              *int       `json:"age,omitempty"`
	Education        *string    `gorm:"type:varchar(255)" json:"education,omitempty"`
	Unit             *string    `gorm:"type:varchar(255);index" json:"unit,omitempty"`
	TrainingLocation *string    `gorm:"type:varchar(255)" json:"training_location,omitempty"`
	TrainingCourse   *string    `gorm:"type:varchar(255)" json:"training_course,omitempty"`
	EnrollmentDate   *time.Time `gorm:"type:date"         json:"enrollment_date,omitempty"`
	CurrentRankSince *time.Time `gorm:"type:date"         json:"current_rank_since,omitempty"`
	LastAppointment  *time.Time `gorm:"type:date"         json:"last_appointment,omitempty"`
	RetirementDate   *time.Time `gorm:"type:date"         json:"retirement_date,omitempty"`
	Notes            *string    `gorm:"type:text"         json:"notes,omitempty"`

	// optimistic lock, bumped on every update
	Version int `gorm:"not null;default:1" json:"version"`
	BaseModel

	PosCode *PosCode `gorm:"foreignKey:PosCodeID;references:ID" json:"pos_code,omitempty"`
}

// TableName table name
func (Personnel) TableName() string { return "personnel" }

// BeforeCreate assigns the primary key
func (p *Personnel) BeforeCreate(_ *gorm.DB) error {
	newID(&p.PersonnelID)
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}

// HasPosition reports whether any of the three position identifiers is present.
func (p *Personnel) HasPosition() bool {
	return nonBlank(p.Position) || nonBlank(p.PositionNumber) || p.PosCodeID != nil
}

func nonBlank(s *string) bool {
	if s == nil {
		return false
	}
	return strings.TrimSpace(*s) != ""
}
