package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"police-personnel/internal/auth"
	"police-personnel/pkg/response"
)

// SessionResolver turns a session token into a live session.
type SessionResolver interface {
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
}

// TokenFromRequest returns the bearer token, falling back to the session cookie.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	if v, err := c.Cookie(cookieName); err == nil {
		return v
	}
	return ""
}

// SessionAuth requires a valid session and stores it on the context.
func SessionAuth(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c, cookieName)
		if token == "" {
			response.Unauthorized(c, response.CodeUnauthorized, "authentication required")
			c.Abort()
			return
		}

		sess, err := resolver.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Unauthorized(c, response.CodeUnauthorized, "session is invalid or expired")
			c.Abort()
			return
		}

		auth.SetSession(c, sess)
		c.Next()
	}
}

// RequireRole admits sessions whose role level is at least required.
// A missing session is 401, an insufficient role is 403.
func RequireRole(required auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := auth.Guard(auth.FromContext(c), required, time.Now())
		if d.Allowed() {
			c.Next()
			return
		}

		if d.State == auth.StateRedirecting && d.RedirectTo == auth.LoginPath {
			response.Unauthorized(c, response.CodeUnauthorized, "authentication required")
		} else {
			response.Forbidden(c, response.CodeForbidden, "insufficient role")
		}
		c.Abort()
	}
}
