package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultTalentLimit = 20
	dashboardListSize  = 5
	freePlanID         = 6
	freePlanName       = "Free Plan"
)

var (
	errActorNotFound = apperrors.NewNotFoundError("actor", "Actor not found")
	jobTags          = []string{"Full-time", "Contract", "Part-time", "Freelance", "Temporary"}
)

// profileDefaults differ between the short and the combined profile.
type profileDefaults struct {
	actorProfession string
	location        string
}

var (
	shortProfileDefaults = profileDefaults{actorProfession: "Actor", location: "India"}
	fullProfileDefaults  = profileDefaults{actorProfession: "Actor & Model", location: "Mumbai, Maharashtra"}
)

type UserService interface {
	GetProfile(db *gorm.DB, userID int64) (*dto.Profile, error)
	GetStats(db *gorm.DB, userID int64) (*dto.ProfileStats, error)
	GetPortfolio(db *gorm.DB, userID int64) ([]dto.PortfolioEntry, error)
	GetPlan(db *gorm.DB, userID int64) *dto.UserPlan
	GetFullProfile(db *gorm.DB, userID int64) (*dto.FullProfile, error)
	UpdateProfile(db *gorm.DB, userID int64, req *dto.UpdateProfileRequest) error

	GetActor(db *gorm.DB, id int64) (*models.ActorProfile, error)
	UpdateActor(db *gorm.DB, userID int64, req *dto.UpdateActorRequest) error
	ListActors(db *gorm.DB, category, gender string) ([]models.ActorProfile, error)

	SearchTalents(db *gorm.DB, req *dto.TalentSearchRequest) (*dto.TalentList, error)
	TalentCategories(db *gorm.DB) ([]string, error)
	Dashboard(db *gorm.DB, userID int64) (*dto.Dashboard, error)
}

type userService struct {
	userRepo         repositories.UserRepository
	profileRepo      repositories.ProfileRepository
	portfolioRepo    repositories.PortfolioRepository
	subscriptionRepo repositories.SubscriptionRepository
	castingRepo      repositories.CastingRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	portfolioRepo repositories.PortfolioRepository,
	subscriptionRepo repositories.SubscriptionRepository,
	castingRepo repositories.CastingRepository,
) UserService {
	return &userService{
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		portfolioRepo:    portfolioRepo,
		subscriptionRepo: subscriptionRepo,
		castingRepo:      castingRepo,
	}
}

// ---------------- Profile ----------------

func (s *userService) GetProfile(db *gorm.DB, userID int64) (*dto.Profile, error) {
	return s.buildProfile(db, userID, shortProfileDefaults)
}

func (s *userService) buildProfile(db *gorm.DB, userID int64, defaults profileDefaults) (*dto.Profile, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	var actor *models.Actor
	if user.UserType == models.UserTypeActor {
		actor, err = s.profileRepo.FindActor(db, userID)
		if err != nil && !errors.Is(err, repositories.ErrActorNotFound) {
			logger.Warn("Failed to load actor profile", "user_id", userID, "error", err)
		}
	}
	return profileFrom(user, actor, defaults), nil
}

// profileFrom assembles the public profile card. actor may be nil.
func profileFrom(user *models.User, actor *models.Actor, defaults profileDefaults) *dto.Profile {
	p := &dto.Profile{
		ID:         user.ID,
		Name:       user.Name,
		Location:   strOr(user.Location, defaults.location),
		Avatar:     AvatarURL(user.Name, user.ID),
		IsVerified: user.IsVerified,
		Bio:        strOr(user.Bio, ""),
		Skills:     []string{},
	}

	var profession string
	if actor != nil {
		profession = strOr(actor.Profession, "")
		if actor.ExperienceYears != nil {
			p.ExperienceYears = *actor.ExperienceYears
		}
		p.Skills = ParseSkills(actor.Skills)
		if actor.Instagram != nil {
			p.Social.Instagram = strings.TrimSpace(*actor.Instagram)
		}
		if actor.Youtube != nil {
			p.Social.Youtube = strings.TrimSpace(*actor.Youtube)
		}
	}

	switch {
	case profession != "":
		p.Profession = profession
	case user.UserType == models.UserTypeActor:
		p.Profession = defaults.actorProfession
	case user.UserType != "":
		p.Profession = user.UserType
	default:
		p.Profession = "User"
	}
	return p
}

// GetStats counts profile views, connections and the user's applications.
// Tables that do not exist count as zero.
func (s *userService) GetStats(db *gorm.DB, userID int64) (*dto.ProfileStats, error) {
	var stats dto.ProfileStats
	var err error
	if stats.ProfileViews, err = s.profileRepo.CountProfileViews(db, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Connections, err = s.profileRepo.CountConnections(db, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if stats.Projects, err = s.profileRepo.CountProjects(db, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &stats, nil
}

func (s *userService) GetPortfolio(db *gorm.DB, userID int64) ([]dto.PortfolioEntry, error) {
	items, err := s.portfolioRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]dto.PortfolioEntry, 0, len(items))
	for _, item := range items {
		out = append(out, dto.PortfolioEntry{
			ID:          item.ID,
			Type:        strOr(item.MediaType, "image"),
			URL:         strOr(item.MediaURL, ""),
			Title:       item.Title,
			Description: item.Description,
			WorkDate:    formatDate(item.WorkDate),
		})
	}
	return out, nil
}

// GetPlan never fails: without an active subscription the user is on the
// free plan.
func (s *userService) GetPlan(db *gorm.DB, userID int64) *dto.UserPlan {
	active, err := s.subscriptionRepo.FindActivePlan(db, userID)
	if err != nil {
		logger.Warn("Failed to load active plan", "user_id", userID, "error", err)
	}
	return PlanFrom(active)
}

// PlanFrom renders an active plan, or the free plan when active is nil.
func PlanFrom(active *models.ActivePlan) *dto.UserPlan {
	if active == nil {
		return &dto.UserPlan{
			ID:       freePlanID,
			Name:     freePlanName,
			IsActive: true,
			Features: append([]string(nil), defaultPlanFeatures...),
		}
	}
	features := ParseFeatures(active.Features)
	if len(features) == 0 {
		features = append([]string(nil), defaultPlanFeatures...)
	}
	return &dto.UserPlan{
		ID:         active.PlanID,
		Name:       active.Name,
		IsActive:   active.IsActive,
		Features:   features,
		ExpiryDate: formatDate(active.EndDate),
	}
}

func (s *userService) GetFullProfile(db *gorm.DB, userID int64) (*dto.FullProfile, error) {
	profile, err := s.buildProfile(db, userID, fullProfileDefaults)
	if err != nil {
		return nil, err
	}
	stats, err := s.GetStats(db, userID)
	if err != nil {
		return nil, err
	}
	portfolio, err := s.GetPortfolio(db, userID)
	if err != nil {
		return nil, err
	}
	plan := s.GetPlan(db, userID)

	return &dto.FullProfile{
		Profile:   *profile,
		Stats:     *stats,
		Portfolio: portfolio,
		Plan: dto.PlanSummary{
			Name:       plan.Name,
			IsActive:   plan.IsActive,
			ExpiryDate: plan.ExpiryDate,
		},
	}, nil
}

func (s *userService) UpdateProfile(db *gorm.DB, userID int64, req *dto.UpdateProfileRequest) error {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Contact != nil {
		fields["contact"] = *req.Contact
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.DOB != nil {
		if *req.DOB == "" {
			fields["dob"] = nil
		} else {
			dob, err := parseDate(*req.DOB)
			if err != nil {
				return apperrors.NewBadRequestError("Invalid dob, expected YYYY-MM-DD")
			}
			fields["dob"] = dob
		}
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.PortfolioURL != nil {
		fields["portfolio_url"] = *req.PortfolioURL
	}
	if req.Availability != nil {
		fields["availability"] = *req.Availability
	}
	if len(fields) == 0 {
		return apperrors.ErrNoFieldsToUpdate
	}

	if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Actors ----------------

func (s *userService) GetActor(db *gorm.DB, id int64) (*models.ActorProfile, error) {
	actor, err := s.profileRepo.FindActorProfile(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrActorNotFound) {
			return nil, errActorNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return actor, nil
}

// UpdateActor writes every actor column from the request. Omitted fields are
// cleared.
func (s *userService) UpdateActor(db *gorm.DB, userID int64, req *dto.UpdateActorRequest) error {
	actor := &models.Actor{
		UserID:          userID,
		Category:        req.Category,
		HeightCM:        req.HeightCM,
		WeightKG:        req.WeightKG,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		AuditionLink:    req.AuditionLink,
		Awards:          req.Awards,
	}
	if err := s.profileRepo.UpsertActor(db, actor); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) ListActors(db *gorm.DB, category, gender string) ([]models.ActorProfile, error) {
	actors, err := s.profileRepo.ListActors(db, category, gender)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if actors == nil {
		actors = []models.ActorProfile{}
	}
	return actors, nil
}

// ---------------- Talents ----------------

func (s *userService) SearchTalents(db *gorm.DB, req *dto.TalentSearchRequest) (*dto.TalentList, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultTalentLimit
	}
	search := strings.TrimSpace(req.Search)
	category := strings.TrimSpace(req.Category)

	rows, total, err := s.profileRepo.SearchTalents(db, repositories.TalentFilter{
		Search:   search,
		Category: category,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	talents := make([]dto.Talent, 0, len(rows))
	for _, row := range rows {
		role := strOr(row.Role, row.UserType)
		if role == "" {
			role = "Actor"
		}
		talents = append(talents, dto.Talent{
			ID:         row.ID,
			Name:       row.Name,
			Role:       role,
			Location:   strOr(row.Location, "India"),
			Rating:     roundTo(row.Rating, 1),
			Image:      AvatarURL(row.Name, row.ID),
			IsFeatured: row.IsFeatured,
		})
	}

	if category == "" {
		category = "All"
	}
	return &dto.TalentList{
		Filters: dto.TalentFilters{
			Search:       req.Search,
			Category:     category,
			Page:         page,
			Limit:        limit,
			TotalResults: total,
		},
		Talents: talents,
	}, nil
}

func (s *userService) TalentCategories(db *gorm.DB) ([]string, error) {
	values, err := s.profileRepo.TalentCategories(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return MergeCategories(values), nil
}

// MergeCategories de-duplicates values, adds "All" and sorts the result.
func MergeCategories(values []string) []string {
	seen := map[string]struct{}{"All": {}}
	out := []string{"All"}
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ---------------- Dashboard ----------------

func (s *userService) Dashboard(db *gorm.DB, userID int64) (*dto.Dashboard, error) {
	out := &dto.Dashboard{
		FeaturedTalents: []dto.FeaturedTalent{},
		TrendingJobs:    []dto.TrendingJob{},
	}

	active, err := s.subscriptionRepo.FindActivePlan(db, userID)
	if err != nil {
		logger.Warn("Dashboard: failed to load plan", "user_id", userID, "error", err)
	}
	if active != nil {
		features := active.Features
		if features == "" {
			features = "Premium Features"
		}
		out.Plan = &dto.DashboardPlan{
			ID:           active.PlanID,
			Name:         active.Name,
			Price:        fmt.Sprintf("%.2f", active.Price),
			DurationDays: active.DurationDays,
			Features:     features,
			ExpiryDate:   formatDate(active.EndDate),
			IsActive:     active.IsActive,
		}
	}

	stats, err := s.GetStats(db, userID)
	if err != nil {
		return nil, err
	}
	out.Stats = *stats

	featured, err := s.profileRepo.FeaturedTalents(db, userID, dashboardListSize)
	if err != nil {
		logger.Warn("Dashboard: failed to load featured talents", "error", err)
	}
	for i, t := range featured {
		seed := t.Name
		if seed == "" {
			seed = fmt.Sprint(i)
		}
		profession := strOr(t.DisplayProfession, t.UserType)
		if profession == "" {
			profession = "Actor"
		}
		out.FeaturedTalents = append(out.FeaturedTalents, dto.FeaturedTalent{
			ID:         t.ID,
			Name:       t.Name,
			Profession: profession,
			Avatar:     AvatarURL(seed, t.ID),
			Location:   strOr(t.Location, "India"),
		})
	}

	jobs, err := s.castingRepo.TrendingJobs(db, dashboardListSize)
	if err != nil {
		logger.Warn("Dashboard: failed to load trending jobs", "error", err)
	}
	out.TrendingJobs = TrendingJobsFrom(jobs, time.Now())
	return out, nil
}

// TrendingJobsFrom maps casting rows to dashboard cards, cycling job tags.
func TrendingJobsFrom(rows []repositories.TrendingJobRow, now time.Time) []dto.TrendingJob {
	out := make([]dto.TrendingJob, 0, len(rows))
	for i, job := range rows {
		title := job.ProjectTitle
		if title == "" {
			title = job.Role
		}
		if title == "" {
			title = "Casting Call"
		}
		posted := job.CreatedAt
		if posted.IsZero() {
			posted = now
		}
		out = append(out, dto.TrendingJob{
			ID:       job.ID,
			Title:    title,
			Company:  strOr(job.ProductionHouseName, "Production House"),
			Tag:      jobTags[i%len(jobTags)],
			Location: strOr(job.Location, "Mumbai"),
			PostedOn: posted.Format(dateLayout),
		})
	}
	return out
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
