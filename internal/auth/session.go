package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

const sessionKey = "auth_session"

// Session authenticated identity carried through a request.
type Session struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has lapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// SetSession stores s on the gin context. The plain user_id and role keys are
// kept as well for handlers that only need those.
func SetSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
	c.Set("user_id", s.UserID)
	c.Set("role", string(s.Role))
}

// FromContext returns the session stored by SetSession, or nil.
func FromContext(c *gin.Context) *Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}
