package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"police-personnel/internal/model"
	"police-personnel/internal/repository"
)

// EnsureAdmin creates an admin account, or promotes and re-keys the existing
// account with that username. created reports which happened.
func EnsureAdmin(ctx context.Context, repo *repository.Repository, cost int, username, password, name string) (created bool, err error) {
	user, err := repo.User.GetByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_, err = createAccount(ctx, repo, cost, accountInput{
			Name:     name,
			Username: username,
			Password: password,
			Role:     model.RoleAdmin,
		}, nil)
		return err == nil, err
	}
	if err != nil {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return false, err
	}
	user.Role = model.RoleAdmin
	user.PasswordHash = string(hash)
	if name != "" {
		user.Name = name
	}
	return false, repo.User.Update(ctx, user)
}
