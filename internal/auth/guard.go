package auth

import "time"

// State lifecycle of a guard evaluation.
type State string

const (
	StateChecking    State = "checking"
	StateAuthorized  State = "authorized"
	StateRedirecting State = "redirecting"
	StateDenied      State = "denied"
)

// Redirect targets
const (
	LoginPath    = "/login"
	NoAccessPath = "/no-access"
)

// Decision outcome of Guard. RedirectTo is set only when State is redirecting.
type Decision struct {
	State      State  `json:"state"`
	Required   Role   `json:"required"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

// Allowed reports whether protected content may be rendered.
func (d Decision) Allowed() bool {
	return d.State == StateAuthorized
}

// Pending returns the decision for a session that is still being resolved.
func Pending(required Role) Decision {
	return Decision{State: StateChecking, Required: required}
}

// Guard decides whether s may access content requiring the given role.
//
//	no session / expired       → redirecting to /login
//	level(role) >= level(req)  → authorized
//	otherwise                  → redirecting to /no-access
//	unknown required role      → denied
func Guard(s *Session, required Role, now time.Time) Decision {
	if !required.Valid() {
		return Decision{State: StateDenied, Required: required}
	}
	if s == nil || s.Expired(now) {
		return Decision{State: StateRedirecting, Required: required, RedirectTo: LoginPath}
	}
	if s.Role.Satisfies(required) {
		return Decision{State: StateAuthorized, Required: required}
	}
	return Decision{State: StateRedirecting, Required: required, RedirectTo: NoAccessPath}
}
