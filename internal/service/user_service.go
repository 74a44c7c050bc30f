package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"police-personnel/config"
	"police-personnel/internal/dto"
	"police-personnel/internal/model"
	"police-personnel/internal/repository"
)

// ── user errors ──

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrUsernameImmutable  = errors.New("username cannot be changed")
	ErrUserSelfDelete     = errors.New("cannot delete your own account")
	ErrUserSelfRoleChange = errors.New("cannot change your own role")
	ErrInvalidRole        = errors.New("invalid role")
)

// UserService account administration
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type userService struct {
	cfg    *config.Config
	repo   *repository.Repository
	store  TokenStore
	logger *zap.Logger
	now    func() time.Time
}

// NewUserService creates a UserService
func NewUserService(cfg *config.Config, repo *repository.Repository, store TokenStore, logger *zap.Logger) UserService {
	return &userService{cfg: cfg, repo: repo, store: store, logger: logger, now: time.Now}
}

// ────────────────────── List ──────────────────────

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, toUserResponse(&users[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Create ──────────────────────

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := createAccount(ctx, s.repo, s.cfg.Auth.BcryptCost, accountInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, &callerID)
	if err != nil {
		if !isUserInputError(err) {
			s.logger.Error("create user failed", zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.UserID), zap.String("role", user.Role), zap.String("by", callerID))
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, callerID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) != user.Username {
		return nil, ErrUsernameImmutable
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := normalizeEmail(req.Email)
		if email != nil {
			existing, err := s.repo.User.GetByEmail(ctx, *email)
			if err == nil && existing.UserID != id {
				return nil, ErrEmailExists
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		user.Email = email
	}
	if req.Role != nil && *req.Role != user.Role {
		if !validRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		if id == callerID {
			return nil, ErrUserSelfRoleChange
		}
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.cfg.Auth.BcryptCost)
		if err != nil {
			s.logger.Error("hash password failed", zap.Error(err))
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedBy = &callerID
	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("update user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

// Delete removes the account and every session it holds. Tokens of those
// sessions are also blacklisted so cached verifications end at once.
func (s *userService) Delete(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return ErrUserSelfDelete
	}

	var sessions []model.Session
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.User.GetByID(ctx, id); err != nil {
			return err
		}
		list, err := tx.Session.ListByUser(ctx, id)
		if err != nil {
			return err
		}
		sessions = list
		if err := tx.Session.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return tx.User.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("delete user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	now := s.now()
	for _, sess := range sessions {
		if err := s.store.BlacklistToken(ctx, sess.SessionID, sess.ExpiresAt.Sub(now)); err != nil {
			s.logger.Warn("blacklist token failed", zap.String("session_id", sess.SessionID), zap.Error(err))
		}
	}

	s.logger.Info("user deleted", zap.String("user_id", id), zap.String("by", callerID), zap.Int("sessions", len(sessions)))
	return nil
}

// ── helpers ──

type accountInput struct {
	Name     string
	Username string
	Email    *string
	Password string
	Role     string
}

// createAccount checks uniqueness, hashes the password and stores the user.
func createAccount(ctx context.Context, repo *repository.Repository, cost int, in accountInput, createdBy *string) (*model.User, error) {
	if !validRole(in.Role) {
		return nil, ErrInvalidRole
	}
	username := strings.TrimSpace(in.Username)

	if _, err := repo.User.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if email != nil {
		if _, err := repo.User.GetByEmail(ctx, *email); err == nil {
			return nil, ErrEmailExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		Role:         in.Role,
		BaseModel:    model.BaseModel{CreatedBy: createdBy},
	}
	if err := repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return user, nil
}

func isUserInputError(err error) bool {
	return errors.Is(err, ErrUsernameExists) || errors.Is(err, ErrEmailExists) || errors.Is(err, ErrInvalidRole)
}

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleHR, model.RoleUser:
		return true
	}
	return false
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
