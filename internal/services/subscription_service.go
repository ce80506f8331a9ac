package services

import (
	"errors"
	"time"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var (
	errPlanNotFound         = apperrors.NewNotFoundError("subscription", "Plan not found")
	errPlanIDRequired       = apperrors.NewBadRequestError("plan_id is required")
	errNoActiveSubscription = apperrors.NewNotFoundError("subscription", "No active subscription")
)

// SubscriptionStatus wraps the newest active subscription with whether it is
// still running.
type SubscriptionStatus struct {
	*models.SubscriptionStatus
	IsActiveNow bool `json:"isActive"`
}

type SubscriptionService interface {
	Plans(db *gorm.DB, orderByDuration bool) ([]models.PremiumPlan, error)
	// Subscribe replaces any active subscription of the user with a new one
	// on the given plan.
	Subscribe(db *gorm.DB, userID, planID int64) (*models.UserSubscription, *models.PremiumPlan, error)
	Current(db *gorm.DB, userID int64) (*models.SubscriptionWithPlan, error)
	Status(db *gorm.DB, userID int64) (*SubscriptionStatus, error)
	Cancel(db *gorm.DB, userID int64) error
	ExpireOverdue(db *gorm.DB) (int64, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	now              func() time.Time
}

func NewSubscriptionService(subscriptionRepo repositories.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo, now: time.Now}
}

func (s *subscriptionService) Plans(db *gorm.DB, orderByDuration bool) ([]models.PremiumPlan, error) {
	plans, err := s.subscriptionRepo.ListPlans(db, orderByDuration)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if plans == nil {
		plans = []models.PremiumPlan{}
	}
	return plans, nil
}

func (s *subscriptionService) Subscribe(db *gorm.DB, userID, planID int64) (*models.UserSubscription, *models.PremiumPlan, error) {
	if planID == 0 {
		return nil, nil, errPlanIDRequired
	}

	plan, err := s.subscriptionRepo.FindPlan(db, planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, nil, errPlanNotFound
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if _, err := s.subscriptionRepo.DeactivateForUser(db, userID); err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	start := s.now()
	end := start.AddDate(0, 0, plan.Duration())
	sub := &models.UserSubscription{
		UserID:    userID,
		PlanID:    plan.ID,
		StartDate: start,
		EndDate:   &end,
		IsActive:  true,
	}
	if err := s.subscriptionRepo.Create(db, sub); err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return sub, plan, nil
}

// Current returns nil when nothing is active.
func (s *subscriptionService) Current(db *gorm.DB, userID int64) (*models.SubscriptionWithPlan, error) {
	sub, err := s.subscriptionRepo.FindCurrent(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

// Status returns nil when the user has no active subscription.
func (s *subscriptionService) Status(db *gorm.DB, userID int64) (*SubscriptionStatus, error) {
	row, err := s.subscriptionRepo.FindStatus(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if row == nil {
		return nil, nil
	}
	running := row.SubscriptionEnd == nil || row.SubscriptionEnd.After(s.now())
	return &SubscriptionStatus{SubscriptionStatus: row, IsActiveNow: running}, nil
}

func (s *subscriptionService) Cancel(db *gorm.DB, userID int64) error {
	affected, err := s.subscriptionRepo.DeactivateForUser(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if affected == 0 {
		return errNoActiveSubscription
	}
	return nil
}

func (s *subscriptionService) ExpireOverdue(db *gorm.DB) (int64, error) {
	return s.subscriptionRepo.ExpireOverdue(db)
}
