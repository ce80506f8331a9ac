package repositories

import (
	"errors"
	"time"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrActorNotFound = errors.New("actor not found")

// ProfileRepository covers actor rows and the derived numbers shown on
// profile and dashboard screens.
type ProfileRepository interface {
	FindActor(db *gorm.DB, userID int64) (*models.Actor, error)
	FindActorProfile(db *gorm.DB, userID int64) (*models.ActorProfile, error)
	ListActors(db *gorm.DB, category, gender string) ([]models.ActorProfile, error)
	UpsertActor(db *gorm.DB, actor *models.Actor) error

	CountProfileViews(db *gorm.DB, userID int64) (int64, error)
	CountConnections(db *gorm.DB, userID int64) (int64, error)
	CountProjects(db *gorm.DB, userID int64) (int64, error)

	SearchTalents(db *gorm.DB, filter TalentFilter) ([]TalentRow, int64, error)
	TalentCategories(db *gorm.DB) ([]string, error)
	FeaturedTalents(db *gorm.DB, excludeUserID int64, limit int) ([]FeaturedTalentRow, error)

	SearchProfiles(db *gorm.DB, filter ProfileSearchFilter) ([]ActorSearchRow, error)
	TopRatedActors(db *gorm.DB, minRating float64, limit int) ([]ActorSearchRow, error)
}

type ProfileRepositoryImpl struct{}

type TalentFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

type TalentRow struct {
	ID         int64
	Name       string
	Location   *string
	UserType   string
	Role       *string
	Rating     float64
	IsFeatured bool
	CreatedAt  time.Time
}

type ProfileSearchFilter struct {
	Category      string
	MinExperience *int
	Skills        string
	Location      string
	Page          int
	Limit         int
}

// ActorSearchRow is an active actor with aggregated review stats.
type ActorSearchRow struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email,omitempty"`
	ProfilePicture  *string  `json:"profile_picture"`
	Location        *string  `json:"location,omitempty"`
	Category        *string  `json:"category,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	Skills          *string  `json:"skills,omitempty"`
	AvgRating       *float64 `json:"avg_rating"`
	TotalReviews    int64    `json:"total_reviews"`
}

type FeaturedTalentRow struct {
	ID                int64
	Name              string
	Location          *string
	UserType          string
	DisplayProfession *string
}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) FindActor(db *gorm.DB, userID int64) (*models.Actor, error) {
	var actor models.Actor
	if err := db.First(&actor, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActorNotFound
		}
		if IsMissingTable(err) {
			return nil, ErrActorNotFound
		}
		return nil, err
	}
	return &actor, nil
}

func (r *ProfileRepositoryImpl) FindActorProfile(db *gorm.DB, userID int64) (*models.ActorProfile, error) {
	var rows []models.ActorProfile
	err := db.Table("users u").
		Select("u.*, a.category, a.height_cm, a.weight_kg, a.skills, a.experience_years, a.audition_link, a.awards, a.profession, a.instagram, a.youtube").
		Joins("LEFT JOIN actors a ON u.id = a.user_id").
		Where("u.id = ? AND u.user_type = ?", userID, models.UserTypeActor).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrActorNotFound
	}
	return &rows[0], nil
}

func (r *ProfileRepositoryImpl) ListActors(db *gorm.DB, category, gender string) ([]models.ActorProfile, error) {
	q := db.Table("users u").
		Select("u.*, a.category, a.height_cm, a.weight_kg, a.skills, a.experience_years, a.audition_link, a.awards, a.profession, a.instagram, a.youtube").
		Joins("LEFT JOIN actors a ON u.id = a.user_id").
		Where("u.user_type = ?", models.UserTypeActor)
	if category != "" {
		q = q.Where("a.category = ?", category)
	}
	if gender != "" {
		q = q.Where("u.gender = ?", gender)
	}

	var rows []models.ActorProfile
	err := q.Scan(&rows).Error
	return rows, err
}

// UpsertActor writes the category, body and experience columns, inserting the
// row when the user has none yet.
func (r *ProfileRepositoryImpl) UpsertActor(db *gorm.DB, actor *models.Actor) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"category", "height_cm", "weight_kg", "skills", "experience_years", "audition_link", "awards",
		}),
	}).Create(actor).Error
}

func (r *ProfileRepositoryImpl) CountProfileViews(db *gorm.DB, userID int64) (int64, error) {
	return countOrZero(db.Table("profile_views").Where("user_id = ?", userID))
}

func (r *ProfileRepositoryImpl) CountConnections(db *gorm.DB, userID int64) (int64, error) {
	return countOrZero(db.Table("connections").Where("user_id = ? OR connected_user_id = ?", userID, userID))
}

func (r *ProfileRepositoryImpl) CountProjects(db *gorm.DB, userID int64) (int64, error) {
	return countOrZero(db.Table("applications").Where("applicant_id = ?", userID))
}

func (r *ProfileRepositoryImpl) talentScope(db *gorm.DB, filter TalentFilter) *gorm.DB {
	q := db.Table("users u").
		Joins("LEFT JOIN actors a ON u.id = a.user_id AND u.user_type = ?", models.UserTypeActor).
		Joins("LEFT JOIN technicians t ON u.id = t.user_id AND u.user_type = ?", models.UserTypeTechnician).
		Where("u.user_type NOT IN ?", []string{
			models.UserTypeAdmin, models.UserTypeProductionHouse, models.UserTypeStudio, models.UserTypeMedia,
		})

	if filter.Search != "" {
		q = q.Where("(u.name LIKE ? OR u.email LIKE ?)", likePattern(filter.Search), likePattern(filter.Search))
	}
	if filter.Category != "" && filter.Category != "All" {
		c := filter.Category
		q = q.Where("(a.category = ? OR a.profession = ? OR u.user_type = ? OR t.specialization = ?)", c, c, c, c)
	}
	return q
}

func (r *ProfileRepositoryImpl) SearchTalents(db *gorm.DB, filter TalentFilter) ([]TalentRow, int64, error) {
	var total int64
	if err := r.talentScope(db, filter).Distinct("u.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TalentRow
	err := r.talentScope(db, filter).
		Select(`u.id, u.name, u.location, u.user_type, u.created_at,
			COALESCE(a.profession, a.category, t.specialization, u.user_type) AS role,
			COALESCE(AVG(rr.rating), 0) AS rating,
			MAX(CASE WHEN fp.user_id IS NOT NULL THEN 1 ELSE 0 END) AS is_featured`).
		Joins("LEFT JOIN ratings_reviews rr ON u.id = rr.reviewed_user_id").
		Joins("LEFT JOIN featured_profiles fp ON u.id = fp.user_id").
		Group("u.id").
		Order("is_featured DESC, rating DESC, u.created_at DESC").
		Limit(filter.Limit).
		Offset(offset(filter.Page, filter.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// TalentCategories gathers actor categories, technician specializations and
// talent user types. Missing tables contribute nothing.
func (r *ProfileRepositoryImpl) TalentCategories(db *gorm.DB) ([]string, error) {
	var out []string
	queries := []*gorm.DB{
		db.Table("actors").Distinct("COALESCE(profession, category)").
			Where("profession IS NOT NULL OR category IS NOT NULL"),
		db.Table("technicians").Distinct("specialization").
			Where("specialization IS NOT NULL"),
		db.Table("users").Distinct("user_type").
			Where("user_type NOT IN ?", []string{
				models.UserTypeAdmin, models.UserTypeProductionHouse, models.UserTypeStudio, models.UserTypeMedia,
			}),
	}
	for _, q := range queries {
		var values []*string
		if err := q.Pluck("category", &values).Error; err != nil {
			if IsMissingTable(err) {
				continue
			}
			return nil, err
		}
		for _, v := range values {
			if v != nil && *v != "" {
				out = append(out, *v)
			}
		}
	}
	return out, nil
}

// FeaturedTalents picks random users on a short-term active plan. Yearly and
// lifetime plans are excluded.
func (r *ProfileRepositoryImpl) FeaturedTalents(db *gorm.DB, excludeUserID int64, limit int) ([]FeaturedTalentRow, error) {
	var rows []FeaturedTalentRow
	err := db.Table("users u").
		Distinct("u.id, u.name, u.location, u.user_type, COALESCE(a.profession, a.category, u.user_type) AS display_profession").
		Joins("JOIN user_subscriptions us ON u.id = us.user_id").
		Joins("JOIN premium_plans pp ON us.plan_id = pp.id").
		Joins("LEFT JOIN actors a ON u.id = a.user_id AND u.user_type = ?", models.UserTypeActor).
		Where("us.is_active = 1 AND (us.end_date IS NULL OR us.end_date >= CURDATE())").
		Where("NOT (pp.duration_days >= 365 OR pp.id = ? OR pp.name LIKE '%Lifetime%' OR pp.name LIKE '%Yearly%')", models.LegacyLifetimePlanID).
		Where("u.id <> ? AND u.user_type <> ?", excludeUserID, models.UserTypeAdmin).
		Order("RAND()").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *ProfileRepositoryImpl) SearchProfiles(db *gorm.DB, filter ProfileSearchFilter) ([]ActorSearchRow, error) {
	q := db.Table("users u").
		Select(`u.id, u.name, u.email, u.profile_image_url AS profile_picture, u.location,
			a.category, a.experience_years, a.skills,
			AVG(rr.rating) AS avg_rating, COUNT(rr.id) AS total_reviews`).
		Joins("JOIN actors a ON u.id = a.user_id").
		Joins("LEFT JOIN ratings_reviews rr ON u.id = rr.reviewed_user_id").
		Where("u.is_active = ?", true)

	if filter.Category != "" {
		q = q.Where("a.category = ?", filter.Category)
	}
	if filter.MinExperience != nil {
		q = q.Where("a.experience_years >= ?", *filter.MinExperience)
	}
	if filter.Skills != "" {
		q = q.Where("a.skills LIKE ?", likePattern(filter.Skills))
	}
	if filter.Location != "" {
		q = q.Where("u.location LIKE ?", likePattern(filter.Location))
	}

	var rows []ActorSearchRow
	err := q.Group("u.id, a.category, a.experience_years, a.skills").
		Order("RAND()").
		Limit(filter.Limit).
		Offset(offset(filter.Page, filter.Limit)).
		Scan(&rows).Error
	return rows, err
}

// TopRatedActors returns active actors whose average rating is at least
// minRating, most reviewed first.
func (r *ProfileRepositoryImpl) TopRatedActors(db *gorm.DB, minRating float64, limit int) ([]ActorSearchRow, error) {
	var rows []ActorSearchRow
	err := db.Table("users u").
		Select("u.id, u.name, u.profile_image_url AS profile_picture, AVG(rr.rating) AS avg_rating, COUNT(rr.id) AS total_reviews").
		Joins("JOIN actors a ON u.id = a.user_id").
		Joins("LEFT JOIN ratings_reviews rr ON u.id = rr.reviewed_user_id").
		Where("u.is_active = ?", true).
		Group("u.id").
		Having("AVG(rr.rating) >= ?", minRating).
		Order("total_reviews DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
