package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"police-personnel/config"
	"police-personnel/internal/api/handler"
	"police-personnel/internal/api/router"
	"police-personnel/internal/model"
	"police-personnel/internal/repository"
	"police-personnel/internal/service"
	"police-personnel/pkg/jwt"
	pkgredis "police-personnel/pkg/redis"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestServer wires the real stack over in-memory SQLite and no Redis.
func newTestServer(t *testing.T) (*gin.Engine, *repository.Repository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Session{}, &model.PosCode{}, &model.Personnel{}))
	require.NoError(t, db.Create(model.DefaultPosCodes()).Error)

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  "router-test-secret-0123456789",
			SessionTTL: time.Hour,
			BcryptCost: bcrypt.MinCost,
			Cookie:     config.CookieConfig{Name: "session_token"},
		},
		Import: config.ImportConfig{MaxRows: 100, MaxUploadMB: 1},
	}

	var rc *pkgredis.Client
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwt.NewManager(&cfg.Auth), rc, rc, zap.NewNop())
	h := handler.NewHandler(cfg, svc, zap.NewNop())

	return router.Setup(cfg, h, svc.Auth, rc, db, zap.NewNop()), repo
}

func seedUser(t *testing.T, repo *repository.Repository, username, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repo.User.Create(context.Background(), &model.User{
		Username: username, Name: username, PasswordHash: string(hash), Role: role,
	}))
}

func call(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := call(r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": username, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.Token
}

func TestHealth(t *testing.T) {
	r, _ := newTestServer(t)

	w := call(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRoleHierarchyOverHTTP(t *testing.T) {
	r, repo := newTestServer(t)
	seedUser(t, repo, "admin", model.RoleAdmin)
	seedUser(t, repo, "clerk", model.RoleHR)
	seedUser(t, repo, "viewer", model.RoleUser)

	admin, clerk, viewer := login(t, r, "admin"), login(t, r, "clerk"), login(t, r, "viewer")
	record := map[string]any{"position": "ผกก.", "full_name": "สมชาย ใจดี", "national_id": "1234567890123"}

	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/personnel", "", nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/personnel", viewer, nil).Code)
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodPost, "/api/v1/personnel", viewer, record).Code)

	w := call(r, http.MethodPost, "/api/v1/personnel", clerk, record)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data model.Personnel `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	dup := call(r, http.MethodPost, "/api/v1/personnel", clerk, map[string]any{"position": "สว.", "national_id": "1234567890123"})
	assert.Equal(t, http.StatusBadRequest, dup.Code)

	path := "/api/v1/personnel/" + created.Data.PersonnelID
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodDelete, path, clerk, nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodDelete, path, admin, nil).Code)

	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/v1/users", clerk, nil).Code)
	assert.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/users", admin, nil).Code)
}

func TestLogoutEndsSession(t *testing.T) {
	r, repo := newTestServer(t)
	seedUser(t, repo, "viewer", model.RoleUser)
	token := login(t, r, "viewer")

	require.Equal(t, http.StatusOK, call(r, http.MethodGet, "/api/v1/auth/session", token, nil).Code)
	require.Equal(t, http.StatusOK, call(r, http.MethodPost, "/api/v1/auth/logout", token, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/auth/session", token, nil).Code)
}

func TestDeletedUserLosesAccess(t *testing.T) {
	r, repo := newTestServer(t)
	seedUser(t, repo, "admin", model.RoleAdmin)
	seedUser(t, repo, "viewer", model.RoleUser)
	admin, viewer := login(t, r, "admin"), login(t, r, "viewer")

	u, err := repo.User.GetByUsername(context.Background(), "viewer")
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, call(r, http.MethodDelete, "/api/v1/users/"+u.UserID, admin, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, call(r, http.MethodGet, "/api/v1/personnel", viewer, nil).Code)
}

func TestRegisterThenPosCodes(t *testing.T) {
	r, _ := newTestServer(t)

	w := call(r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"name": "New Officer", "username": "newbie", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	token := login(t, r, "newbie")
	w = call(r, http.MethodGet, "/api/v1/pos-code", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Data.Total)

	// self-registered accounts get the lowest role
	assert.Equal(t, http.StatusForbidden, call(r, http.MethodGet, "/api/v1/personnel/import/template", token, nil).Code)
}
