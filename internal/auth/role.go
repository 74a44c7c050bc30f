package auth

// Role one of the three fixed access levels.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleHR    Role = "hr"
	RoleUser  Role = "user"
)

// Level ordinal position in the hierarchy; 0 for unknown roles.
func (r Role) Level() int {
	switch r {
	case RoleAdmin:
		return 3
	case RoleHR:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r.Level() > 0
}

// Satisfies reports whether r meets or exceeds required.
func (r Role) Satisfies(required Role) bool {
	return r.Valid() && required.Valid() && r.Level() >= required.Level()
}
