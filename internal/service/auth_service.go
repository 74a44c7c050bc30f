package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"police-personnel/config"
	"police-personnel/internal/auth"
	"police-personnel/internal/dto"
	"police-personnel/internal/model"
	"police-personnel/internal/repository"
	"police-personnel/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("session is invalid or expired")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// AuthService login, logout and session resolution
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Logout(ctx context.Context, sess *auth.Session) error
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
	CurrentSession(ctx context.Context, sess *auth.Session) (*dto.SessionResponse, error)
	ChangePassword(ctx context.Context, sess *auth.Session, req *dto.ChangePasswordRequest) error
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	store  TokenStore
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthService creates an AuthService
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	store TokenStore,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("load user failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.jwtMgr.GenerateSessionToken(user.UserID, user.Username, user.Name, user.Role)
	if err != nil {
		s.logger.Error("sign session token failed", zap.Error(err))
		return nil, err
	}

	session := &model.Session{
		SessionID: claims.ID,
		UserID:    user.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("persist session failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.String("user_id", user.UserID), zap.String("role", user.Role))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      toUserResponse(user),
	}, nil
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	user, err := createAccount(ctx, s.repo, s.cfg.Auth.BcryptCost, accountInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.RoleUser,
	}, nil)
	if err != nil {
		if !isUserInputError(err) {
			s.logger.Error("register failed", zap.Error(err))
		}
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, sess *auth.Session) error {
	if err := s.repo.Session.Delete(ctx, sess.TokenID); err != nil {
		s.logger.Error("delete session failed", zap.Error(err))
		return err
	}
	if err := s.store.BlacklistToken(ctx, sess.TokenID, sess.ExpiresAt.Sub(s.now())); err != nil {
		// the session row is already gone, which is what Authenticate checks
		s.logger.Warn("blacklist token failed", zap.Error(err))
	}
	return nil
}

// ────────────────────── Authenticate ──────────────────────

// Authenticate resolves a bearer token to a live session. The role comes from
// the user row, so role changes apply to existing sessions immediately.
func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Session, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}

	revoked, err := s.store.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("blacklist lookup failed", zap.Error(err))
	} else if revoked {
		return nil, ErrSessionInvalid
	}

	now := s.now()
	row, err := s.repo.Session.GetActive(ctx, claims.ID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		s.logger.Error("load session failed", zap.Error(err))
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, row.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		s.logger.Error("load session user failed", zap.Error(err))
		return nil, err
	}

	return &auth.Session{
		UserID:    user.UserID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      auth.Role(user.Role),
		TokenID:   row.SessionID,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

// ────────────────────── CurrentSession ──────────────────────

func (s *authService) CurrentSession(ctx context.Context, sess *auth.Session) (*dto.SessionResponse, error) {
	user, err := s.repo.User.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.Error(err))
		return nil, err
	}
	return &dto.SessionResponse{User: toUserResponse(user), ExpiresAt: sess.ExpiresAt}, nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, sess *auth.Session, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.Auth.BcryptCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedBy = &sess.UserID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("update password failed", zap.Error(err))
		return err
	}
	return nil
}
