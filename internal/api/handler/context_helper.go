package handler

import (
	"github.com/gin-gonic/gin"

	"police-personnel/internal/auth"
	"police-personnel/pkg/response"
)

// MustGetUserID returns the caller's user id. When the session middleware did
// not run it writes 401 and returns false; the caller should return at once.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, response.CodeUnauthorized, "authentication required")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, response.CodeUnauthorized, "authentication required")
		return "", false
	}
	return s, true
}

// MustGetSession returns the full session, with the same contract as MustGetUserID.
func MustGetSession(c *gin.Context) (*auth.Session, bool) {
	s := auth.FromContext(c)
	if s == nil {
		response.Unauthorized(c, response.CodeUnauthorized, "authentication required")
		return nil, false
	}
	return s, true
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
