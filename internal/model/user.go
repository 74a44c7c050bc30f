package model

import "gorm.io/gorm"

// Role values stored in users.role
const (
	RoleAdmin = "admin"
	RoleHR    = "hr"
	RoleUser  = "user"
)

// User login account (table users)
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey"                    json:"user_id"`
	Username     string  `gorm:"type:varchar(100);not null;uniqueIndex"  json:"username"`
	Email        *string `gorm:"type:varchar(255);uniqueIndex"           json:"email,omitempty"`
	Name         string  `gorm:"type:varchar(200);not null"              json:"name"`
	PasswordHash string  `gorm:"type:varchar(255);not null"              json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	BaseModel
}

// TableName table name
func (User) TableName() string { return "users" }

// BeforeCreate assigns the primary key
func (u *User) BeforeCreate(_ *gorm.DB) error {
	newID(&u.UserID)
	return nil
}
