package services

import (
	"context"
	"errors"
	"testing"

	"cinemarathi_backend/internal/email"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountFixture(t *testing.T) (AccountService, *fakeUserRepo, *fakeDeleteRequestRepo, *fakeMailer) {
	users := newFakeUserRepo(
		&models.User{ID: 1, Email: "meera@cine.in", PasswordHash: mustHash(t, "pass123")},
		&models.User{ID: 2, Email: "google@cine.in"},
	)
	tx := &fakeTx{}
	requests := &fakeDeleteRequestRepo{requests: map[int64]*models.DeleteAccountRequest{}, tx: tx}
	mailer := &fakeMailer{}
	svc := NewAccountService(users, requests, mailer).(*accountService)
	svc.inTx = tx.run
	return svc, users, requests, mailer
}

func TestAccountService_RequestDeletion(t *testing.T) {
	svc, _, requests, mailer := newAccountFixture(t)
	ctx := context.Background()

	_, err := svc.RequestDeletion(ctx, nil, &dto.DeleteAccountRequest{Email: "meera@cine.in", Password: "pass123"})
	assert.ErrorIs(t, err, errDeleteFieldsRequired)

	_, err = svc.RequestDeletion(ctx, nil, &dto.DeleteAccountRequest{Email: "meera@cine.in", Password: "pass123", Reason: "  bye  "})
	assert.ErrorIs(t, err, errDeleteReasonTooShort)

	_, err = svc.RequestDeletion(ctx, nil, &dto.DeleteAccountRequest{Email: "ghost@cine.in", Password: "pass123", Reason: "Moving away from acting"})
	assert.ErrorIs(t, err, errDeleteUnknownEmail)

	_, err = svc.RequestDeletion(ctx, nil, &dto.DeleteAccountRequest{Email: "google@cine.in", Password: "pass123", Reason: "Moving away from acting"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.RequestDeletion(ctx, nil, &dto.DeleteAccountRequest{Email: "meera@cine.in", Password: "wrong", Reason: "Moving away from acting"})
	assert.ErrorIs(t, err, errInvalidEmailOrPassword)

	req, err := svc.RequestDeletion(ctx, nil, &dto.DeleteAccountRequest{Email: "meera@cine.in", Password: "pass123", Reason: "Moving away from acting"})
	require.NoError(t, err)
	assert.Equal(t, models.DeleteRequestPending, req.Status)
	assert.Len(t, requests.requests, 1)
	assert.Equal(t, []string{email.TemplateDeleteRequestReceived}, mailer.templates)
	assert.Equal(t, []string{"meera@cine.in"}, mailer.to[0])

	_, err = svc.RequestDeletion(ctx, nil, &dto.DeleteAccountRequest{Email: "meera@cine.in", Password: "pass123", Reason: "Moving away from acting"})
	assert.ErrorIs(t, err, errDeleteRequestPending)
}

func TestAccountService_ProcessDeletionRequest(t *testing.T) {
	svc, users, requests, mailer := newAccountFixture(t)
	ctx := context.Background()
	requests.requests[1] = &models.DeleteAccountRequest{ID: 1, UserID: 1, Email: "meera@cine.in", Status: models.DeleteRequestPending}

	_, err := svc.ProcessDeletionRequest(ctx, nil, 9, 1, "pending")
	assert.ErrorIs(t, err, errDeleteRequestStatus)

	_, err = svc.ProcessDeletionRequest(ctx, nil, 9, 42, "approved")
	assert.ErrorIs(t, err, errDeleteRequestNotFound)

	req, err := svc.ProcessDeletionRequest(ctx, nil, 9, 1, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.DeleteRequestApproved, req.Status)
	assert.Empty(t, users.deleted)

	req, err = svc.ProcessDeletionRequest(ctx, nil, 9, 1, "completed")
	require.NoError(t, err)
	assert.Equal(t, int64(9), *req.ProcessedBy)
	assert.Equal(t, []int64{1}, users.deleted)
	assert.Len(t, mailer.templates, 2)

	_, err = svc.ProcessDeletionRequest(ctx, nil, 9, 1, "rejected")
	assert.ErrorIs(t, err, errDeleteRequestProcessed)
}

func TestAccountService_CompletedRequestRollsBackWhenDeleteFails(t *testing.T) {
	svc, users, requests, mailer := newAccountFixture(t)
	users.deleteErr = errors.New("foreign key constraint fails")
	requests.requests[1] = &models.DeleteAccountRequest{ID: 1, UserID: 1, Email: "meera@cine.in", Status: models.DeleteRequestApproved}

	_, err := svc.ProcessDeletionRequest(context.Background(), nil, 9, 1, "completed")
	require.Error(t, err)

	assert.Equal(t, models.DeleteRequestApproved, requests.requests[1].Status)
	assert.Nil(t, requests.requests[1].ProcessedBy)
	assert.Contains(t, users.users, int64(1))
	assert.Empty(t, mailer.templates)
	assert.ErrorIs(t, requests.tx.failed, users.deleteErr)
}
