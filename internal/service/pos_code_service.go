package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"police-personnel/internal/dto"
	"police-personnel/internal/repository"
	pkgredis "police-personnel/pkg/redis"
)

const (
	posCodeCacheKey = "pos_code:list"
	posCodeCacheTTL = time.Hour
)

// PosCodeService position-code lookup
type PosCodeService interface {
	List(ctx context.Context) ([]dto.PosCodeResponse, error)
}

type posCodeService struct {
	repo   *repository.Repository
	cache  Cache
	logger *zap.Logger
}

// NewPosCodeService creates a PosCodeService. The table is seeded by
// migration and never written at runtime, so the list is cached.
func NewPosCodeService(repo *repository.Repository, cache Cache, logger *zap.Logger) PosCodeService {
	return &posCodeService{repo: repo, cache: cache, logger: logger}
}

func (s *posCodeService) List(ctx context.Context) ([]dto.PosCodeResponse, error) {
	var cached []dto.PosCodeResponse
	err := s.cache.GetJSON(ctx, posCodeCacheKey, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, pkgredis.ErrCacheMiss) {
		s.logger.Warn("pos code cache read failed", zap.Error(err))
	}

	codes, err := s.repo.PosCode.List(ctx)
	if err != nil {
		s.logger.Error("list pos codes failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PosCodeResponse, 0, len(codes))
	for _, c := range codes {
		result = append(result, dto.PosCodeResponse{ID: c.ID, Name: c.Name})
	}

	if err := s.cache.SetJSON(ctx, posCodeCacheKey, result, posCodeCacheTTL); err != nil {
		s.logger.Warn("pos code cache write failed", zap.Error(err))
	}
	return result, nil
}
