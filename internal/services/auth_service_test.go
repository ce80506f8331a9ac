package services

import (
	"net/http"
	"testing"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestAuthService_Register(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(nil, &dto.RegisterRequest{Email: "a@b.c", Password: "secret1", Role: "actor"})
	assert.ErrorIs(t, err, apperrors.ErrMissingRequiredFields)

	res, err := svc.Register(nil, &dto.RegisterRequest{Name: " Asha ", Email: "asha@cine.in", Password: "secret1", Role: "actor"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Nil(t, res.User)

	stored := repo.users[res.UserID]
	require.NotNil(t, stored)
	assert.Equal(t, "Asha", stored.Name)
	assert.True(t, auth.CheckPasswordHash("secret1", stored.PasswordHash))

	_, err = svc.Register(nil, &dto.RegisterRequest{Name: "Again", Email: "asha@cine.in", Password: "x", Role: "actor"})
	assert.ErrorIs(t, err, errEmailRegistered)
}

func TestAuthService_Login(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: 1, Name: "Ravi", Email: "ravi@cine.in", UserType: "technician", PasswordHash: mustHash(t, "pass123")})
	svc := NewAuthService(repo)

	_, err := svc.Login(nil, &dto.LoginRequest{Email: "ravi@cine.in"})
	assert.ErrorIs(t, err, errLoginFieldsRequired)

	_, err = svc.Login(nil, &dto.LoginRequest{Email: "nobody@cine.in", Password: "pass123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(nil, &dto.LoginRequest{Email: "ravi@cine.in", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	res, err := svc.Login(nil, &dto.LoginRequest{Email: "ravi@cine.in", Password: "pass123"})
	require.NoError(t, err)
	require.NotNil(t, res.User)
	assert.Equal(t, "technician", res.User.Role)

	claims, err := auth.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), claims.UserID)
}

func TestAuthService_AdminLogin(t *testing.T) {
	repo := newFakeUserRepo(
		&models.User{ID: 1, Email: "root@cine.in", UserType: models.UserTypeAdmin, IsVerified: true, PasswordHash: mustHash(t, "admin1")},
		&models.User{ID: 2, Email: "new@cine.in", UserType: models.UserTypeAdmin, PasswordHash: mustHash(t, "admin1")},
		&models.User{ID: 3, Email: "actor@cine.in", UserType: models.UserTypeActor, PasswordHash: mustHash(t, "admin1")},
	)
	svc := NewAuthService(repo)

	_, err := svc.AdminLogin(nil, &dto.LoginRequest{Email: "actor@cine.in", Password: "admin1"})
	assert.ErrorIs(t, err, errInvalidEmailOrPassword)

	_, err = svc.AdminLogin(nil, &dto.LoginRequest{Email: "new@cine.in", Password: "admin1"})
	assert.ErrorIs(t, err, errAdminNotVerified)

	res, err := svc.AdminLogin(nil, &dto.LoginRequest{Email: "root@cine.in", Password: "admin1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.UserID)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newFakeUserRepo(&models.User{ID: 5, Email: "p@cine.in", PasswordHash: mustHash(t, "old-pass")})
	svc := NewAuthService(repo)

	err := svc.ChangePassword(nil, 5, &dto.ChangePasswordRequest{CurrentPassword: "old-pass"})
	assert.ErrorIs(t, err, errPasswordFieldsRequired)

	err = svc.ChangePassword(nil, 5, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "new-pass"})
	assert.ErrorIs(t, err, errCurrentPasswordWrong)

	err = svc.ChangePassword(nil, 5, &dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "abc"})
	assert.ErrorIs(t, err, errNewPasswordTooShort)

	err = svc.ChangePassword(nil, 99, &dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)

	require.NoError(t, svc.ChangePassword(nil, 5, &dto.ChangePasswordRequest{CurrentPassword: "old-pass", NewPassword: "new-pass"}))
	assert.True(t, auth.CheckPasswordHash("new-pass", repo.users[5].PasswordHash))
}
