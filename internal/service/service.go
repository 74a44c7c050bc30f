package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"police-personnel/config"
	"police-personnel/internal/repository"
	"police-personnel/pkg/jwt"
)

// TokenStore revoked session ids. *redis.Client implements it and tolerates nil.
type TokenStore interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// Cache JSON value cache. *redis.Client implements it and tolerates nil.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// Service aggregate of every service
type Service struct {
	Auth      AuthService
	User      UserService
	Personnel PersonnelService
	PosCode   PosCodeService
	Import    ImportService
	Export    ExportService
}

// NewService wires the services. store and cache may be backed by a nil Redis client.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	store TokenStore,
	cache Cache,
	logger *zap.Logger,
) *Service {
	personnel := NewPersonnelService(repo, cfg.Import.StrictNationalID, logger)
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, store, logger),
		User:      NewUserService(cfg, repo, store, logger),
		Personnel: personnel,
		PosCode:   NewPosCodeService(repo, cache, logger),
		Import:    NewImportService(&cfg.Import, personnel, logger),
		Export:    NewExportService(repo, logger),
	}
}
