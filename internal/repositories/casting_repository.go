package repositories

import (
	"errors"
	"time"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrCastingCallNotFound = errors.New("casting call not found")

type CastingRepository interface {
	Create(db *gorm.DB, call *models.CastingCall) error
	FindByID(db *gorm.DB, id int64) (*models.CastingCall, error)
	FindListing(db *gorm.DB, id int64) (*models.CastingCallListing, error)
	List(db *gorm.DB) ([]models.CastingCallListing, error)
	ListWithApplicationCounts(db *gorm.DB) ([]models.CastingCallListing, error)
	SetApproved(db *gorm.DB, id int64, approved bool) error
	DeleteWithApplications(db *gorm.DB, id int64) error
	Count(db *gorm.DB) (int64, error)
	CountActive(db *gorm.DB) (int64, error)

	Search(db *gorm.DB, filter CastingSearchFilter) ([]models.CastingCallListing, int64, error)
	Trending(db *gorm.DB, limit int) ([]models.CastingCallListing, error)
	TrendingJobs(db *gorm.DB, limit int) ([]TrendingJobRow, error)
}

type CastingRepositoryImpl struct{}

type CastingSearchFilter struct {
	Role      string
	Gender    string
	Location  string
	MinBudget *float64
	MaxBudget *float64
	Keyword   string
	Page      int
	Limit     int
}

type TrendingJobRow struct {
	ID                  int64
	ProjectTitle        string
	Role                string
	Location            *string
	CreatedAt           time.Time
	ProductionHouseName *string
}

func NewCastingRepository() CastingRepository {
	return &CastingRepositoryImpl{}
}

func (r *CastingRepositoryImpl) Create(db *gorm.DB, call *models.CastingCall) error {
	return db.Create(call).Error
}

func (r *CastingRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.CastingCall, error) {
	var call models.CastingCall
	if err := db.First(&call, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCastingCallNotFound
		}
		return nil, err
	}
	return &call, nil
}

func (r *CastingRepositoryImpl) FindListing(db *gorm.DB, id int64) (*models.CastingCallListing, error) {
	var rows []models.CastingCallListing
	err := db.Table("casting_calls cc").
		Select("cc.*, u.name AS production_house_name").
		Joins("JOIN users u ON cc.production_house_id = u.id").
		Where("cc.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrCastingCallNotFound
	}
	return &rows[0], nil
}

func (r *CastingRepositoryImpl) List(db *gorm.DB) ([]models.CastingCallListing, error) {
	var rows []models.CastingCallListing
	err := db.Table("casting_calls cc").
		Select("cc.*, u.name AS production_house_name").
		Joins("JOIN users u ON cc.production_house_id = u.id").
		Order("cc.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *CastingRepositoryImpl) ListWithApplicationCounts(db *gorm.DB) ([]models.CastingCallListing, error) {
	var rows []models.CastingCallListing
	err := db.Table("casting_calls cc").
		Select("cc.*, u.name AS production_house_name, COUNT(DISTINCT a.id) AS total_applications").
		Joins("JOIN users u ON cc.production_house_id = u.id").
		Joins("LEFT JOIN applications a ON cc.id = a.casting_call_id").
		Group("cc.id").
		Order("cc.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *CastingRepositoryImpl) SetApproved(db *gorm.DB, id int64, approved bool) error {
	return db.Model(&models.CastingCall{}).Where("id = ?", id).Update("is_approved", approved).Error
}

func (r *CastingRepositoryImpl) DeleteWithApplications(db *gorm.DB, id int64) error {
	if err := db.Where("casting_call_id = ?", id).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	return db.Delete(&models.CastingCall{}, id).Error
}

func (r *CastingRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&models.CastingCall{}).Count(&n).Error
	return n, err
}

// CountActive counts calls whose audition is today or later, or undated.
func (r *CastingRepositoryImpl) CountActive(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&models.CastingCall{}).
		Where("audition_date >= CURDATE() OR audition_date IS NULL").
		Count(&n).Error
	return n, err
}

func (r *CastingRepositoryImpl) searchScope(db *gorm.DB, f CastingSearchFilter) *gorm.DB {
	q := db.Table("casting_calls cc").Where("cc.audition_date >= CURDATE()")
	if f.Role != "" {
		q = q.Where("cc.role LIKE ?", likePattern(f.Role))
	}
	if f.Gender != "" {
		q = q.Where("(cc.gender = ? OR cc.gender = 'any')", f.Gender)
	}
	if f.Location != "" {
		q = q.Where("cc.location LIKE ?", likePattern(f.Location))
	}
	if f.MinBudget != nil {
		q = q.Where("cc.budget_per_day >= ?", *f.MinBudget)
	}
	if f.MaxBudget != nil {
		q = q.Where("cc.budget_per_day <= ?", *f.MaxBudget)
	}
	if f.Keyword != "" {
		kw := likePattern(f.Keyword)
		q = q.Where("(cc.project_title LIKE ? OR cc.description LIKE ? OR cc.skills_required LIKE ?)", kw, kw, kw)
	}
	return q
}

func (r *CastingRepositoryImpl) Search(db *gorm.DB, f CastingSearchFilter) ([]models.CastingCallListing, int64, error) {
	var total int64
	if err := r.searchScope(db, f).Distinct("cc.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.CastingCallListing
	err := r.searchScope(db, f).
		Select("cc.*, u.name AS production_house_name, COUNT(DISTINCT a.id) AS total_applications").
		Joins("JOIN users u ON cc.production_house_id = u.id").
		Joins("LEFT JOIN applications a ON cc.id = a.casting_call_id").
		Group("cc.id").
		Order("cc.created_at DESC").
		Limit(f.Limit).
		Offset(offset(f.Page, f.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Trending returns upcoming calls with the most applications.
func (r *CastingRepositoryImpl) Trending(db *gorm.DB, limit int) ([]models.CastingCallListing, error) {
	var rows []models.CastingCallListing
	err := db.Table("casting_calls cc").
		Select("cc.*, u.name AS production_house_name, COUNT(a.id) AS total_applications").
		Joins("JOIN users u ON cc.production_house_id = u.id").
		Joins("LEFT JOIN applications a ON cc.id = a.casting_call_id").
		Where("cc.audition_date >= CURDATE() OR cc.audition_date IS NULL").
		Group("cc.id").
		Order("total_applications DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// TrendingJobs prefers calls from production houses on a yearly or lifetime
// plan and falls back to the most recent calls.
func (r *CastingRepositoryImpl) TrendingJobs(db *gorm.DB, limit int) ([]TrendingJobRow, error) {
	var rows []TrendingJobRow
	err := db.Table("casting_calls cc").
		Select("cc.id, cc.project_title, cc.role, cc.location, cc.created_at, u.name AS production_house_name").
		Joins("INNER JOIN users u ON cc.production_house_id = u.id").
		Joins("INNER JOIN user_subscriptions us ON u.id = us.user_id").
		Joins("INNER JOIN premium_plans pp ON us.plan_id = pp.id").
		Where("us.is_active = 1 AND (us.end_date IS NULL OR us.end_date >= CURDATE())").
		Where("(pp.duration_days >= 365 OR pp.id = ? OR pp.name LIKE '%Lifetime%' OR pp.name LIKE '%Yearly%')", models.LegacyLifetimePlanID).
		Order("cc.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil && !IsMissingTable(err) {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	err = db.Table("casting_calls cc").
		Select("cc.id, cc.project_title, cc.role, cc.location, cc.created_at, COALESCE(u.name, 'Production House') AS production_house_name").
		Joins("LEFT JOIN users u ON cc.production_house_id = u.id").
		Order("cc.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
