package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"police-personnel/config"
	"police-personnel/internal/api/middleware"
	"police-personnel/internal/auth"
	"police-personnel/internal/dto"
	"police-personnel/internal/service"
	"police-personnel/pkg/response"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authSvc service.AuthService
	cookie  *config.CookieConfig
	logger  *zap.Logger
}

// NewAuthHandler creates an AuthHandler. cookie may be nil in tests.
func NewAuthHandler(authSvc service.AuthService, cookie *config.CookieConfig, logger *zap.Logger) *AuthHandler {
	if cookie == nil {
		cookie = &config.CookieConfig{Name: "session_token", SameSite: "lax"}
	}
	return &AuthHandler{authSvc: authSvc, cookie: cookie, logger: logger}
}

// Login password login; the token is returned and also set as an HttpOnly cookie
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	h.setSessionCookie(c, result.Token, time.Until(result.ExpiresAt))
	response.OK(c, result)
}

// Register self-registration with the lowest role
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, user)
}

// Logout ends the current session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), sess); err != nil {
		response.InternalError(c)
		return
	}

	h.setSessionCookie(c, "", -1)
	response.OK(c, nil)
}

// Session current user and expiry
// GET /api/v1/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	result, err := h.authSvc.CurrentSession(c.Request.Context(), sess)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, result)
}

// ChangePassword rotate own password
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	sess, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "invalid parameters")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), sess, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, nil)
}

// Guard evaluates the route guard for the caller. It never fails on a missing
// or bad session: that is a "redirecting to /login" decision.
// GET /api/v1/auth/guard?role=hr
func (h *AuthHandler) Guard(c *gin.Context) {
	var req dto.GuardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, response.CodeInvalidParams, "role is required")
		return
	}

	var sess *auth.Session
	if token := middleware.TokenFromRequest(c, h.cookie.Name); token != "" {
		s, err := h.authSvc.Authenticate(c.Request.Context(), token)
		if err == nil {
			sess = s
		} else if !errors.Is(err, service.ErrSessionInvalid) {
			h.logger.Warn("guard session lookup failed", zap.Error(err))
		}
	}

	response.OK(c, auth.Guard(sess, auth.Role(req.Role), time.Now()))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	if ttl < 0 {
		maxAge = -1
	}
	c.SetSameSite(sameSiteMode(h.cookie.SameSite))
	c.SetCookie(h.cookie.Name, value, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}

func sameSiteMode(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 11001, "invalid username or password")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 11002, "current password is incorrect")
	case errors.Is(err, service.ErrUsernameExists):
		response.BadRequest(c, 11003, "username already exists")
	case errors.Is(err, service.ErrEmailExists):
		response.BadRequest(c, 11004, "email already exists")
	case errors.Is(err, service.ErrSessionInvalid), errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, response.CodeUnauthorized, "session is invalid or expired")
	default:
		response.InternalError(c)
	}
}
