package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"police-personnel/internal/model"
	pkgerrors "police-personnel/pkg/errors"
)

// PersonnelFilters optional list filters
type PersonnelFilters struct {
	Search string // full name, national id or position; case-insensitive contains
	Rank   string // exact
	Unit   string // contains
}

// PersonnelRepository personnel data access
type PersonnelRepository interface {
	Create(ctx context.Context, p *model.Personnel) error
	GetByID(ctx context.Context, id string) (*model.Personnel, error)
	GetByNationalID(ctx context.Context, nationalID string) (*model.Personnel, error)
	Update(ctx context.Context, p *model.Personnel) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *PersonnelFilters) ([]model.Personnel, error)
}

type personnelRepo struct {
	db *gorm.DB
}

// NewPersonnelRepo creates a PersonnelRepository
func NewPersonnelRepo(db *gorm.DB) PersonnelRepository {
	return &personnelRepo{db: db}
}

func (r *personnelRepo) Create(ctx context.Context, p *model.Personnel) error {
	return r.db.WithContext(ctx).Omit("PosCode").Create(p).Error
}

func (r *personnelRepo) GetByID(ctx context.Context, id string) (*model.Personnel, error) {
	var p model.Personnel
	err := r.db.WithContext(ctx).
		Preload("PosCode").
		Where("personnel_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *personnelRepo) GetByNationalID(ctx context.Context, nationalID string) (*model.Personnel, error) {
	var p model.Personnel
	err := r.db.WithContext(ctx).
		Where("national_id = ?", nationalID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes every column of p when the stored version still equals
// p.Version, then bumps the version. A stale p yields ErrOptimisticLock.
func (r *personnelRepo) Update(ctx context.Context, p *model.Personnel) error {
	oldVersion := p.Version
	p.Version = oldVersion + 1

	result := r.db.WithContext(ctx).
		Model(p).
		Select("*").
		Omit("PosCode", "PersonnelID", "CreatedAt", "CreatedBy").
		Where("version = ?", oldVersion).
		Updates(p)
	if result.Error != nil {
		p.Version = oldVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		p.Version = oldVersion
		return pkgerrors.ErrOptimisticLock
	}
	return nil
}

func (r *personnelRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("personnel_id = ?", id).Delete(&model.Personnel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List orders by seniority (unset last), then newest first.
func (r *personnelRepo) List(ctx context.Context, filters *PersonnelFilters) ([]model.Personnel, error) {
	db := r.db.WithContext(ctx).Model(&model.Personnel{}).Preload("PosCode")

	if filters != nil {
		if s := strings.TrimSpace(filters.Search); s != "" {
			like := "%" + strings.ToLower(s) + "%"
			db = db.Where("LOWER(full_name) LIKE ? OR LOWER(national_id) LIKE ? OR LOWER(position) LIKE ?", like, like, like)
		}
		if rank := strings.TrimSpace(filters.Rank); rank != "" {
			db = db.Where("rank = ?", rank)
		}
		if unit := strings.TrimSpace(filters.Unit); unit != "" {
			db = db.Where("LOWER(unit) LIKE ?", "%"+strings.ToLower(unit)+"%")
		}
	}

	var list []model.Personnel
	err := db.
		Order("CASE WHEN seniority IS NULL THEN 1 ELSE 0 END").
		Order("seniority ASC").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
