package dto

import "time"

// ── shared responses ──

// UserResponse account without credentials
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PosCodeResponse lookup entry
type PosCodeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
