package services

import (
	"errors"
	"strings"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var (
	errEmailRegistered        = apperrors.NewConflictError("auth", "Email already registered")
	errLoginFieldsRequired    = apperrors.NewBadRequestError("Email and password required")
	errInvalidEmailOrPassword = apperrors.NewUnauthorizedError("Invalid email or password")
	errAdminNotVerified       = apperrors.NewForbiddenError("Account not verified by superadmin")
	errPasswordFieldsRequired = apperrors.NewBadRequestError("Current password and new password are required")
	errCurrentPasswordWrong   = apperrors.NewUnauthorizedError("Current password is incorrect")
	errNewPasswordTooShort    = apperrors.NewBadRequestError("New password must be at least 6 characters long")
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	AdminLogin(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ChangePassword(db *gorm.DB, userID int64, req *dto.ChangePasswordRequest) error
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if blank(req.Name) || blank(req.Email) || req.Password == "" || blank(req.Role) {
		return nil, apperrors.ErrMissingRequiredFields
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: hash,
		UserType:     req.Role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, errEmailRegistered
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := issueToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{UserID: user.ID, Token: token}, nil
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if blank(req.Email) || req.Password == "" {
		return nil, errLoginFieldsRequired
	}

	user, err := s.userRepo.FindByEmail(db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := issueToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		UserID: user.ID,
		Token:  token,
		User:   authUser(user),
	}, nil
}

// AdminLogin only accepts verified admin accounts.
func (s *authService) AdminLogin(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if blank(req.Email) || req.Password == "" {
		return nil, errInvalidEmailOrPassword
	}

	user, err := s.userRepo.FindAdminByEmail(db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errInvalidEmailOrPassword
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, errInvalidEmailOrPassword
	}
	if !user.IsVerified {
		return nil, errAdminNotVerified
	}

	token, err := issueToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{UserID: user.ID, Token: token, User: authUser(user)}, nil
}

func (s *authService) ChangePassword(db *gorm.DB, userID int64, req *dto.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return errPasswordFieldsRequired
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return errCurrentPasswordWrong
	}
	if err := auth.ValidatePassword(req.NewPassword); err != nil {
		return errNewPasswordTooShort
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.UpdatePassword(db, userID, hash); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func issueToken(user *models.User) (string, error) {
	return auth.GenerateToken(auth.Identity{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Role:       user.UserType,
		IsVerified: user.IsVerified,
	})
}

func authUser(user *models.User) *dto.AuthUser {
	return &dto.AuthUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.UserType,
	}
}
