package services

import (
	"context"
	"errors"
	"strings"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/email"
	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const minDeleteReasonLength = 10

var (
	errDeleteFieldsRequired   = apperrors.NewBadRequestError("Email, password, and reason are required")
	errDeleteReasonTooShort   = apperrors.NewBadRequestError("Reason must be at least 10 characters long")
	errDeleteUnknownEmail     = apperrors.NewNotFoundError("user", "User not found with this email")
	errDeleteRequestPending   = apperrors.NewConflictError("account", "You already have a pending delete account request. Please wait for it to be processed.")
	errDeleteRequestNotFound  = apperrors.NewNotFoundError("account", "Delete account request not found")
	errDeleteRequestStatus    = apperrors.NewBadRequestError("Status must be approved, rejected, or completed")
	errDeleteRequestProcessed = apperrors.NewConflictError("account", "Delete account request already processed")
)

// AccountService handles account deletion requests from submission to
// processing by an admin.
type AccountService interface {
	RequestDeletion(ctx context.Context, db *gorm.DB, req *dto.DeleteAccountRequest) (*models.DeleteAccountRequest, error)
	ListDeletionRequests(db *gorm.DB, status string) ([]models.DeleteAccountRequest, error)
	ProcessDeletionRequest(ctx context.Context, db *gorm.DB, adminID, requestID int64, status string) (*models.DeleteAccountRequest, error)
}

type accountService struct {
	userRepo    repositories.UserRepository
	requestRepo repositories.DeleteRequestRepository
	mailer      email.Provider
	inTx        txFunc
}

func NewAccountService(
	userRepo repositories.UserRepository,
	requestRepo repositories.DeleteRequestRepository,
	mailer email.Provider,
) AccountService {
	return &accountService{
		userRepo:    userRepo,
		requestRepo: requestRepo,
		mailer:      mailer,
		inTx:        gormTransaction,
	}
}

func (s *accountService) RequestDeletion(ctx context.Context, db *gorm.DB, req *dto.DeleteAccountRequest) (*models.DeleteAccountRequest, error) {
	if blank(req.Email) || req.Password == "" || blank(req.Reason) {
		return nil, errDeleteFieldsRequired
	}
	reason := strings.TrimSpace(req.Reason)
	if len([]rune(reason)) < minDeleteReasonLength {
		return nil, errDeleteReasonTooShort
	}

	user, err := s.userRepo.FindByEmail(db, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, errDeleteUnknownEmail
		}
		return nil, apperrors.InternalError(err)
	}
	if user.PasswordHash == "" {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, errInvalidEmailOrPassword
	}

	pending, err := s.requestRepo.HasPending(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if pending {
		return nil, errDeleteRequestPending
	}

	request := &models.DeleteAccountRequest{
		UserID: user.ID,
		Email:  strings.TrimSpace(req.Email),
		Reason: reason,
		Status: models.DeleteRequestPending,
	}
	if err := s.requestRepo.Create(db, request); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notify(ctx, request, "We received your account deletion request", email.TemplateDeleteRequestReceived)
	return request, nil
}

func (s *accountService) ListDeletionRequests(db *gorm.DB, status string) ([]models.DeleteAccountRequest, error) {
	reqs, err := s.requestRepo.List(db, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return reqs, nil
}

// ProcessDeletionRequest records the admin decision. A completed request
// removes the user account.
func (s *accountService) ProcessDeletionRequest(ctx context.Context, db *gorm.DB, adminID, requestID int64, status string) (*models.DeleteAccountRequest, error) {
	next := models.DeleteRequestStatus(status)
	switch next {
	case models.DeleteRequestApproved, models.DeleteRequestRejected, models.DeleteRequestCompleted:
	default:
		return nil, errDeleteRequestStatus
	}

	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrDeleteRequestNotFound) {
			return nil, errDeleteRequestNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if request.Status == models.DeleteRequestCompleted || request.Status == models.DeleteRequestRejected {
		return nil, errDeleteRequestProcessed
	}

	err = s.inTx(db, func(tx *gorm.DB) error {
		if err := s.requestRepo.MarkProcessed(tx, requestID, next, adminID); err != nil {
			return err
		}
		if next == models.DeleteRequestCompleted {
			return s.userRepo.Delete(tx, request.UserID)
		}
		return nil
	})
	if err != nil {
		return nil, internal(err)
	}
	if next == models.DeleteRequestCompleted {
		logger.CtxInfo(ctx, "User account deleted on request", "user_id", request.UserID, "request_id", request.ID)
	}

	request.Status = next
	request.ProcessedBy = &adminID
	s.notify(ctx, request, "Your account deletion request was updated", email.TemplateDeleteRequestProcessed)
	return request, nil
}

// notify emails the requester. Delivery failures are only logged.
func (s *accountService) notify(ctx context.Context, request *models.DeleteAccountRequest, subject, template string) {
	if s.mailer == nil {
		return
	}
	err := s.mailer.SendTemplate([]string{request.Email}, subject, template, email.TemplateData{
		"Email":     request.Email,
		"Reason":    request.Reason,
		"RequestID": request.ID,
		"Status":    string(request.Status),
	})
	if err != nil {
		logger.CtxWithError(ctx, "Failed to send delete request email", err, "request_id", request.ID)
	}
}
