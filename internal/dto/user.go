package dto

// ── user management ──

// CreateUserRequest admin creates an account
type CreateUserRequest struct {
	Name     string  `json:"name"     binding:"required,min=1,max=200"`
	Username string  `json:"username" binding:"required,min=3,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=6,max=72"`
	Role     string  `json:"role"     binding:"required,oneof=admin hr user"`
}

// UpdateUserRequest partial update. Username may be sent but must match the
// current value: it cannot change after creation.
type UpdateUserRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=200"`
	Username *string `json:"username" binding:"omitempty"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Role     *string `json:"role"     binding:"omitempty,oneof=admin hr user"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
}
