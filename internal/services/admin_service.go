package services

import (
	"errors"
	"strings"
	"time"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	recentUsersLimit     = 10
	lifetimePlanDuration = 99999
	yearlyPlanDuration   = 365
)

var (
	errIsVerifiedRequired   = apperrors.NewBadRequestError("is_verified is required")
	errNewsFieldsRequired   = apperrors.NewBadRequestError("Title and content are required")
	errFeaturedUserRequired = apperrors.NewBadRequestError("user_id is required")
	errSubscriptionNotFound = apperrors.NewNotFoundError("subscription", "Subscription not found")
	errNoPremiumToRemove    = apperrors.NewNotFoundError("subscription", "No active premium subscription found for this user")
	errInvalidDate          = apperrors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
)

type AdminService interface {
	Dashboard(db *gorm.DB) (*dto.AdminDashboard, error)

	ListUsers(db *gorm.DB, userType string) ([]repositories.AdminUserRow, error)
	VerifyUser(db *gorm.DB, id int64, req *dto.VerifyUserRequest) error
	SuspendUser(db *gorm.DB, id int64) error
	DeleteUser(db *gorm.DB, id int64) error

	ListCastingCalls(db *gorm.DB) ([]models.CastingCallListing, error)
	CastingApplications(db *gorm.DB, castingCallID int64) ([]models.ApplicantApplication, error)
	SetCastingApproval(db *gorm.DB, id int64, approved bool) error
	DeleteCastingCall(db *gorm.DB, id int64) error

	ListNews(db *gorm.DB) ([]models.News, error)
	CreateNews(db *gorm.DB, req *dto.CreateNewsRequest) (*models.News, error)
	DeleteNews(db *gorm.DB, id int64) error
	ListFeatured(db *gorm.DB) ([]models.FeaturedProfileListing, error)
	CreateFeatured(db *gorm.DB, req *dto.CreateFeaturedRequest) (*models.FeaturedProfile, error)

	ListSubscriptions(db *gorm.DB) ([]models.AdminSubscription, error)
	CreateSubscription(db *gorm.DB, req *dto.CreateSubscriptionRequest) (*models.UserSubscription, error)
	UpdateSubscription(db *gorm.DB, id int64, req *dto.UpdateSubscriptionRequest) error
	DeleteSubscription(db *gorm.DB, id int64) error
	PremiumUsers(db *gorm.DB) ([]models.PremiumUser, error)
	AssignPremium(db *gorm.DB, userID int64, req *dto.AssignPremiumRequest) (*models.UserSubscription, error)
	RemovePremium(db *gorm.DB, userID int64) error
}

type adminService struct {
	userRepo         repositories.UserRepository
	castingRepo      repositories.CastingRepository
	applicationRepo  repositories.ApplicationRepository
	contentRepo      repositories.ContentRepository
	subscriptionRepo repositories.SubscriptionRepository
	now              func() time.Time
	inTx             txFunc
}

func NewAdminService(
	userRepo repositories.UserRepository,
	castingRepo repositories.CastingRepository,
	applicationRepo repositories.ApplicationRepository,
	contentRepo repositories.ContentRepository,
	subscriptionRepo repositories.SubscriptionRepository,
) AdminService {
	return &adminService{
		userRepo:         userRepo,
		castingRepo:      castingRepo,
		applicationRepo:  applicationRepo,
		contentRepo:      contentRepo,
		subscriptionRepo: subscriptionRepo,
		now:              time.Now,
		inTx:             gormTransaction,
	}
}

func (s *adminService) Dashboard(db *gorm.DB) (*dto.AdminDashboard, error) {
	users, err := s.userRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	calls, err := s.castingRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	apps, err := s.applicationRepo.Count(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	recent, err := s.userRepo.Recent(db, recentUsersLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if recent == nil {
		recent = []repositories.RecentUserRow{}
	}
	return &dto.AdminDashboard{
		TotalUsers:        users,
		TotalCastingCalls: calls,
		TotalApplications: apps,
		RecentUsers:       recent,
	}, nil
}

// ---------------- Users ----------------

func (s *adminService) ListUsers(db *gorm.DB, userType string) ([]repositories.AdminUserRow, error) {
	users, err := s.userRepo.List(db, strings.TrimSpace(userType))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if users == nil {
		users = []repositories.AdminUserRow{}
	}
	return users, nil
}

func (s *adminService) VerifyUser(db *gorm.DB, id int64, req *dto.VerifyUserRequest) error {
	if req.IsVerified == nil {
		return errIsVerifiedRequired
	}
	if err := s.requireUser(db, id); err != nil {
		return err
	}
	if err := s.userRepo.SetVerified(db, id, *req.IsVerified); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) SuspendUser(db *gorm.DB, id int64) error {
	if err := s.requireUser(db, id); err != nil {
		return err
	}
	if err := s.userRepo.SetVerified(db, id, false); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) DeleteUser(db *gorm.DB, id int64) error {
	if err := s.requireUser(db, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) requireUser(db *gorm.DB, id int64) error {
	exists, err := s.userRepo.Exists(db, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ---------------- Casting calls ----------------

func (s *adminService) ListCastingCalls(db *gorm.DB) ([]models.CastingCallListing, error) {
	calls, err := s.castingRepo.ListWithApplicationCounts(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if calls == nil {
		calls = []models.CastingCallListing{}
	}
	return calls, nil
}

func (s *adminService) CastingApplications(db *gorm.DB, castingCallID int64) ([]models.ApplicantApplication, error) {
	apps, err := s.applicationRepo.ListByCastingCall(db, castingCallID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if apps == nil {
		apps = []models.ApplicantApplication{}
	}
	return apps, nil
}

func (s *adminService) SetCastingApproval(db *gorm.DB, id int64, approved bool) error {
	if _, err := s.castingRepo.FindByID(db, id); err != nil {
		return handleCastingError(err)
	}
	if err := s.castingRepo.SetApproved(db, id, approved); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) DeleteCastingCall(db *gorm.DB, id int64) error {
	if _, err := s.castingRepo.FindByID(db, id); err != nil {
		return handleCastingError(err)
	}
	if err := s.castingRepo.DeleteWithApplications(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Content ----------------

func (s *adminService) ListNews(db *gorm.DB) ([]models.News, error) {
	news, err := s.contentRepo.ListNews(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if news == nil {
		news = []models.News{}
	}
	return news, nil
}

func (s *adminService) CreateNews(db *gorm.DB, req *dto.CreateNewsRequest) (*models.News, error) {
	if blank(req.Title) || blank(req.Content) {
		return nil, errNewsFieldsRequired
	}
	news := &models.News{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := s.contentRepo.CreateNews(db, news); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return news, nil
}

func (s *adminService) DeleteNews(db *gorm.DB, id int64) error {
	if err := s.contentRepo.DeleteNews(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) ListFeatured(db *gorm.DB) ([]models.FeaturedProfileListing, error) {
	featured, err := s.contentRepo.ListFeatured(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if featured == nil {
		featured = []models.FeaturedProfileListing{}
	}
	return featured, nil
}

func (s *adminService) CreateFeatured(db *gorm.DB, req *dto.CreateFeaturedRequest) (*models.FeaturedProfile, error) {
	if req.UserID == 0 {
		return nil, errFeaturedUserRequired
	}
	now := s.now()
	fp := &models.FeaturedProfile{
		UserID:       req.UserID,
		FeaturedDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}
	if err := s.contentRepo.CreateFeatured(db, fp); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return fp, nil
}

// ---------------- Subscriptions ----------------

func (s *adminService) ListSubscriptions(db *gorm.DB) ([]models.AdminSubscription, error) {
	subs, err := s.subscriptionRepo.ListAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if subs == nil {
		subs = []models.AdminSubscription{}
	}
	return subs, nil
}

func (s *adminService) CreateSubscription(db *gorm.DB, req *dto.CreateSubscriptionRequest) (*models.UserSubscription, error) {
	if req.UserID == 0 || req.PlanID == 0 || blank(req.StartDate) || blank(req.EndDate) {
		return nil, apperrors.ErrMissingRequiredFields
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, errInvalidDate
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, errInvalidDate
	}

	sub := &models.UserSubscription{
		UserID:    req.UserID,
		PlanID:    req.PlanID,
		StartDate: start,
		EndDate:   &end,
		IsActive:  req.IsActive != nil && *req.IsActive,
	}
	if err := s.subscriptionRepo.Create(db, sub); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return sub, nil
}

func (s *adminService) UpdateSubscription(db *gorm.DB, id int64, req *dto.UpdateSubscriptionRequest) error {
	fields := map[string]interface{}{}
	if req.PlanID != nil {
		fields["plan_id"] = *req.PlanID
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return errInvalidDate
		}
		fields["start_date"] = start
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			fields["end_date"] = nil
		} else {
			end, err := parseDate(*req.EndDate)
			if err != nil {
				return errInvalidDate
			}
			fields["end_date"] = end
		}
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return apperrors.ErrNoFieldsToUpdate
	}

	if _, err := s.subscriptionRepo.FindByID(db, id); err != nil {
		return handleSubscriptionError(err)
	}
	if err := s.subscriptionRepo.UpdateFields(db, id, fields); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) DeleteSubscription(db *gorm.DB, id int64) error {
	if _, err := s.subscriptionRepo.FindByID(db, id); err != nil {
		return handleSubscriptionError(err)
	}
	if err := s.subscriptionRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *adminService) PremiumUsers(db *gorm.DB) ([]models.PremiumUser, error) {
	users, err := s.subscriptionRepo.PremiumUsers(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if users == nil {
		users = []models.PremiumUser{}
	}
	return users, nil
}

// AssignPremium grants a user premium access in one transaction: resolve or
// create the plan, deactivate what is active, insert the new subscription.
func (s *adminService) AssignPremium(db *gorm.DB, userID int64, req *dto.AssignPremiumRequest) (*models.UserSubscription, error) {
	var sub *models.UserSubscription
	err := s.inTx(db, func(tx *gorm.DB) error {
		if err := s.requireUser(tx, userID); err != nil {
			return err
		}

		plan, err := s.resolvePremiumPlan(tx, req)
		if err != nil {
			return err
		}

		if _, err := s.subscriptionRepo.DeactivateForUser(tx, userID); err != nil {
			return apperrors.InternalError(err)
		}

		now := s.now()
		sub = &models.UserSubscription{
			UserID:    userID,
			PlanID:    plan.ID,
			StartDate: now,
			IsActive:  true,
		}
		if !req.IsLifetime {
			end := now.AddDate(0, 0, plan.Duration())
			sub.EndDate = &end
		}
		if err := s.subscriptionRepo.Create(tx, sub); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, internal(err)
	}
	return sub, nil
}

func (s *adminService) resolvePremiumPlan(tx *gorm.DB, req *dto.AssignPremiumRequest) (*models.PremiumPlan, error) {
	if req.PlanID != nil && *req.PlanID != 0 {
		plan, err := s.subscriptionRepo.FindPlan(tx, *req.PlanID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlanNotFound) {
				return nil, errPlanNotFound
			}
			return nil, apperrors.InternalError(err)
		}
		return plan, nil
	}

	plans, err := s.subscriptionRepo.ListPlans(tx, false)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if plan := ChoosePremiumPlan(plans, req.IsLifetime); plan != nil {
		return plan, nil
	}

	plan := DefaultPremiumPlan(req.IsLifetime)
	if err := s.subscriptionRepo.CreatePlan(tx, plan); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return plan, nil
}

func (s *adminService) RemovePremium(db *gorm.DB, userID int64) error {
	affected, err := s.subscriptionRepo.DeactivateForUser(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if affected == 0 {
		return errNoPremiumToRemove
	}
	return nil
}

// ChoosePremiumPlan picks the first plan, in the given order, that fits the
// requested access. It returns nil when none does.
//
// Lifetime matches a "Lifetime" name, a duration of at least a year or the
// legacy lifetime id. Yearly matches a duration of exactly a year or a
// "Yearly" name.
func ChoosePremiumPlan(plans []models.PremiumPlan, lifetime bool) *models.PremiumPlan {
	for i := range plans {
		p := &plans[i]
		days := 0
		if p.DurationDays != nil {
			days = *p.DurationDays
		}
		if lifetime {
			if strings.Contains(p.Name, "Lifetime") || days >= yearlyPlanDuration || p.ID == models.LegacyLifetimePlanID {
				return p
			}
			continue
		}
		if days == yearlyPlanDuration || strings.Contains(p.Name, "Yearly") {
			return p
		}
	}
	return nil
}

// DefaultPremiumPlan is created when no existing plan fits.
func DefaultPremiumPlan(lifetime bool) *models.PremiumPlan {
	if lifetime {
		days := lifetimePlanDuration
		return &models.PremiumPlan{
			Name:         "Lifetime Premium",
			DurationDays: &days,
			Features:     datatypes.JSON(`["Lifetime Access"]`),
		}
	}
	days := yearlyPlanDuration
	return &models.PremiumPlan{
		Name:         "Yearly Premium",
		DurationDays: &days,
		Features:     datatypes.JSON(`["Premium Access"]`),
	}
}

func handleSubscriptionError(err error) error {
	if errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return errSubscriptionNotFound
	}
	return apperrors.InternalError(err)
}
