package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"police-personnel/config"
)

const issuer = "police-personnel"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims session token claims. RegisteredClaims.ID is the session id.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwtv5.RegisteredClaims
}

// Manager signs and verifies session tokens
type Manager struct {
	secret     []byte
	sessionTTL time.Duration
	now        func() time.Time
}

// NewManager creates a Manager
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.JWTSecret),
		sessionTTL: cfg.SessionTTL,
		now:        time.Now,
	}
}

// SessionTTL configured session lifetime
func (m *Manager) SessionTTL() time.Duration {
	return m.sessionTTL
}

// GenerateSessionToken signs a new token with a fresh session id.
// The caller persists the returned claims' ID as the session row.
func (m *Manager) GenerateSessionToken(userID, username, name, role string) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Name:     name,
		Role:     role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(m.sessionTTL)),
			Issuer:    issuer,
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// ParseToken verifies signature, issuer and expiry.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwtv5.WithIssuer(issuer), jwtv5.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
