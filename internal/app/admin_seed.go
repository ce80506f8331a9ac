package app

import (
	"errors"
	"fmt"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"

	"gorm.io/gorm"
)

const (
	DefaultAdminEmail    = "admin@cinemarathi.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Admin User"
)

// EnsureAdmin creates a verified admin account unless a user with that email
// already exists. The existing or new user is returned with created set
// accordingly.
func EnsureAdmin(db *gorm.DB, email, password, name string) (*models.User, bool, error) {
	users := repositories.NewUserRepository()

	existing, err := users.FindByEmail(db, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		UserType:     models.UserTypeAdmin,
		IsVerified:   true,
		IsActive:     true,
	}
	if err := users.Create(db, admin); err != nil {
		return nil, false, fmt.Errorf("failed to create admin user: %w", err)
	}
	return admin, true, nil
}
