package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregate of every repository
type Repository struct {
	db *gorm.DB

	User      UserRepository
	Session   SessionRepository
	Personnel PersonnelRepository
	PosCode   PosCodeRepository
}

// NewRepository creates the aggregate
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:        db,
		User:      NewUserRepo(db),
		Session:   NewSessionRepo(db),
		Personnel: NewPersonnelRepo(db),
		PosCode:   NewPosCodeRepo(db),
	}
}

// WithTx returns a Repository bound to tx
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// Transaction runs fn inside a database transaction and commits when fn
// returns nil. A Repository assembled without a db (unit tests) runs fn directly.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
