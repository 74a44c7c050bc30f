package model

import (
	"time"

	"github.com/google/uuid"
)

// BaseModel audit fields embedded by every business model
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// newID assigns a uuid when the primary key is still empty.
func newID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
