package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var (
	errCastingCallNotFound    = apperrors.NewNotFoundError("casting", "Casting call not found")
	errAlreadyApplied         = apperrors.NewConflictError("casting", "Already applied to this casting call")
	errInvalidStatus          = apperrors.NewBadRequestError("Invalid status")
	errApplicationNotFound    = apperrors.NewNotFoundError("casting", "Application not found")
	errCastingFieldsRequired  = apperrors.NewBadRequestError("project_title and role are required")
	errCastingCallIDRequired  = apperrors.NewBadRequestError("casting_call_id is required")
	errInvalidAuditionDateFmt = apperrors.NewBadRequestError("Invalid audition_date, expected YYYY-MM-DD")
)

type CastingService interface {
	CreateCall(db *gorm.DB, userID int64, req *dto.CreateCastingCallRequest) (*models.CastingCall, error)
	ListCalls(db *gorm.DB) ([]models.CastingCallListing, error)
	GetCall(db *gorm.DB, id int64) (*models.CastingCallListing, error)

	Apply(db *gorm.DB, userID int64, req *dto.ApplyRequest) (*models.Application, error)
	MyApplications(db *gorm.DB, userID int64) ([]models.MyApplication, error)
	UpdateApplicationStatus(ctx context.Context, db *gorm.DB, userID, applicationID int64, status string) error
}

type castingService struct {
	castingRepo     repositories.CastingRepository
	applicationRepo repositories.ApplicationRepository
	notifications   NotificationService
}

func NewCastingService(
	castingRepo repositories.CastingRepository,
	applicationRepo repositories.ApplicationRepository,
	notifications NotificationService,
) CastingService {
	return &castingService{
		castingRepo:     castingRepo,
		applicationRepo: applicationRepo,
		notifications:   notifications,
	}
}

// CreateCall expects the caller to be a production house; the route enforces it.
func (s *castingService) CreateCall(db *gorm.DB, userID int64, req *dto.CreateCastingCallRequest) (*models.CastingCall, error) {
	if blank(req.ProjectTitle) || blank(req.Role) {
		return nil, errCastingFieldsRequired
	}

	call := &models.CastingCall{
		ProductionHouseID: userID,
		ProjectTitle:      strings.TrimSpace(req.ProjectTitle),
		Role:              strings.TrimSpace(req.Role),
		Gender:            req.Gender,
		MinAge:            req.MinAge,
		MaxAge:            req.MaxAge,
		SkillsRequired:    req.SkillsRequired,
		Location:          req.Location,
		BudgetPerDay:      req.BudgetPerDay,
		Description:       req.Description,
	}
	if req.AuditionDate != nil && *req.AuditionDate != "" {
		d, err := parseDate(*req.AuditionDate)
		if err != nil {
			return nil, errInvalidAuditionDateFmt
		}
		call.AuditionDate = &d
	}

	if err := s.castingRepo.Create(db, call); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return call, nil
}

func (s *castingService) ListCalls(db *gorm.DB) ([]models.CastingCallListing, error) {
	calls, err := s.castingRepo.List(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if calls == nil {
		calls = []models.CastingCallListing{}
	}
	return calls, nil
}

func (s *castingService) GetCall(db *gorm.DB, id int64) (*models.CastingCallListing, error) {
	call, err := s.castingRepo.FindListing(db, id)
	if err != nil {
		return nil, handleCastingError(err)
	}
	return call, nil
}

func (s *castingService) Apply(db *gorm.DB, userID int64, req *dto.ApplyRequest) (*models.Application, error) {
	if req.CastingCallID == 0 {
		return nil, errCastingCallIDRequired
	}
	if _, err := s.castingRepo.FindByID(db, req.CastingCallID); err != nil {
		return nil, handleCastingError(err)
	}

	exists, err := s.applicationRepo.Exists(db, req.CastingCallID, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, errAlreadyApplied
	}

	app := &models.Application{
		CastingCallID: req.CastingCallID,
		ApplicantID:   userID,
		AuditionLink:  req.AuditionLink,
		Status:        models.ApplicationApplied,
	}
	if err := s.applicationRepo.Create(db, app); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

func (s *castingService) MyApplications(db *gorm.DB, userID int64) ([]models.MyApplication, error) {
	apps, err := s.applicationRepo.ListByApplicant(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if apps == nil {
		apps = []models.MyApplication{}
	}
	return apps, nil
}

// UpdateApplicationStatus lets the production house that owns the casting
// call move an application along. The applicant is notified afterwards.
func (s *castingService) UpdateApplicationStatus(ctx context.Context, db *gorm.DB, userID, applicationID int64, status string) error {
	if !models.IsValidApplicationStatus(status) {
		return errInvalidStatus
	}

	app, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrApplicationNotFound) {
			return errApplicationNotFound
		}
		return apperrors.InternalError(err)
	}
	call, err := s.castingRepo.FindByID(db, app.CastingCallID)
	if err != nil {
		return handleCastingError(err)
	}
	if call.ProductionHouseID != userID {
		return apperrors.ErrNotAuthorized
	}

	if err := s.applicationRepo.UpdateStatus(db, applicationID, models.ApplicationStatus(status)); err != nil {
		return apperrors.InternalError(err)
	}

	if s.notifications != nil {
		msg := fmt.Sprintf("Your application for %q is now %s", call.ProjectTitle, status)
		if err := s.notifications.Notify(ctx, db, app.ApplicantID, "Application update", msg, "application_status"); err != nil {
			logger.CtxWithError(ctx, "Failed to notify applicant", err, "application_id", applicationID)
		}
	}
	return nil
}

func handleCastingError(err error) error {
	if errors.Is(err, repositories.ErrCastingCallNotFound) {
		return errCastingCallNotFound
	}
	return apperrors.InternalError(err)
}
