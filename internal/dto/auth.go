package dto

import "time"

// ── auth ──

// LoginRequest credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest self-registration; the account gets role "user"
type RegisterRequest struct {
	Name     string  `json:"name"     binding:"required,min=1,max=200"`
	Username string  `json:"username" binding:"required,min=3,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
}

// ChangePasswordRequest rotate own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

// LoginResponse issued session
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// SessionResponse current session
type SessionResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// GuardRequest query for the route guard
type GuardRequest struct {
	Role string `form:"role" binding:"required"`
}
