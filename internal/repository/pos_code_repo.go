package repository

import (
	"context"

	"gorm.io/gorm"

	"police-personnel/internal/model"
)

// PosCodeRepository read-only position-code lookup
type PosCodeRepository interface {
	List(ctx context.Context) ([]model.PosCode, error)
	Exists(ctx context.Context, id int) (bool, error)
}

type posCodeRepo struct {
	db *gorm.DB
}

// NewPosCodeRepo creates a PosCodeRepository
func NewPosCodeRepo(db *gorm.DB) PosCodeRepository {
	return &posCodeRepo{db: db}
}

func (r *posCodeRepo) List(ctx context.Context) ([]model.PosCode, error) {
	var codes []model.PosCode
	err := r.db.WithContext(ctx).Order("id ASC").Find(&codes).Error
	return codes, err
}

func (r *posCodeRepo) Exists(ctx context.Context, id int) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.PosCode{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}
