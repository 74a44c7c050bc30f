package model

import "time"

// Session server-side session (table sessions).
// SessionID equals the session token's JWT ID; the row is deleted with its user.
type Session struct {
	SessionID string    `gorm:"type:uuid;primaryKey"     json:"session_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName table name
func (Session) TableName() string { return "sessions" }
