package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"police-personnel/internal/model"
)

// SessionRepository server-side session rows
type SessionRepository interface {
	Create(ctx context.Context, s *model.Session) error
	GetActive(ctx context.Context, id string, now time.Time) (*model.Session, error)
	ListByUser(ctx context.Context, userID string) ([]model.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a SessionRepository
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// GetActive returns the session only if it has not expired at now.
func (r *sessionRepo) GetActive(ctx context.Context, id string, now time.Time) (*model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", id, now).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID string) ([]model.Session, error) {
	var list []model.Session
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", id).Delete(&model.Session{}).Error
}

func (r *sessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Session{}).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.Session{})
	return res.RowsAffected, res.Error
}
