package repositories

import (
	"errors"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type SubscriptionRepository interface {
	// Plans
	ListPlans(db *gorm.DB, orderByDuration bool) ([]models.PremiumPlan, error)
	FindPlan(db *gorm.DB, id int64) (*models.PremiumPlan, error)
	CreatePlan(db *gorm.DB, plan *models.PremiumPlan) error

	// Subscriptions
	Create(db *gorm.DB, sub *models.UserSubscription) error
	FindByID(db *gorm.DB, id int64) (*models.UserSubscription, error)
	DeactivateForUser(db *gorm.DB, userID int64) (int64, error)
	FindActivePlan(db *gorm.DB, userID int64) (*models.ActivePlan, error)
	FindCurrent(db *gorm.DB, userID int64) (*models.SubscriptionWithPlan, error)
	FindStatus(db *gorm.DB, userID int64) (*models.SubscriptionStatus, error)

	// Admin
	ListAll(db *gorm.DB) ([]models.AdminSubscription, error)
	UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) error
	Delete(db *gorm.DB, id int64) error
	PremiumUsers(db *gorm.DB) ([]models.PremiumUser, error)

	// Worker
	ExpireOverdue(db *gorm.DB) (int64, error)
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) ListPlans(db *gorm.DB, orderByDuration bool) ([]models.PremiumPlan, error) {
	var plans []models.PremiumPlan
	q := db.Model(&models.PremiumPlan{})
	if orderByDuration {
		q = q.Order("duration_days")
	} else {
		q = q.Order("id")
	}
	err := q.Find(&plans).Error
	return plans, err
}

func (r *SubscriptionRepositoryImpl) FindPlan(db *gorm.DB, id int64) (*models.PremiumPlan, error) {
	var plan models.PremiumPlan
	if err := db.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *SubscriptionRepositoryImpl) CreatePlan(db *gorm.DB, plan *models.PremiumPlan) error {
	return db.Create(plan).Error
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.UserSubscription) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.UserSubscription, error) {
	var sub models.UserSubscription
	if err := db.First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// DeactivateForUser switches off every active subscription of the user and
// returns how many were affected.
func (r *SubscriptionRepositoryImpl) DeactivateForUser(db *gorm.DB, userID int64) (int64, error) {
	res := db.Model(&models.UserSubscription{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

// FindActivePlan returns the subscription that is active today, or nil.
func (r *SubscriptionRepositoryImpl) FindActivePlan(db *gorm.DB, userID int64) (*models.ActivePlan, error) {
	var rows []models.ActivePlan
	err := db.Table("user_subscriptions us").
		Select(`us.id, us.plan_id, us.start_date, us.end_date, us.is_active,
			pp.name, pp.price, pp.duration_days, COALESCE(CAST(pp.features AS CHAR), '') AS features`).
		Joins("JOIN premium_plans pp ON us.plan_id = pp.id").
		Where("us.user_id = ? AND us.is_active = 1", userID).
		Where("(us.end_date IS NULL OR us.end_date >= CURDATE())").
		Order("us.end_date DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		if IsMissingTable(err) {
			return nil, nil
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindCurrent returns the active subscription ending in the future, or nil.
func (r *SubscriptionRepositoryImpl) FindCurrent(db *gorm.DB, userID int64) (*models.SubscriptionWithPlan, error) {
	var rows []models.SubscriptionWithPlan
	err := db.Table("user_subscriptions s").
		Select("s.*, p.name, p.features").
		Joins("JOIN premium_plans p ON s.plan_id = p.id").
		Where("s.user_id = ? AND s.is_active = ? AND s.end_date > NOW()", userID, true).
		Order("s.end_date DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *SubscriptionRepositoryImpl) FindStatus(db *gorm.DB, userID int64) (*models.SubscriptionStatus, error) {
	var rows []models.SubscriptionStatus
	err := db.Table("user_subscriptions us").
		Select(`us.id, us.user_id, us.plan_id, us.start_date AS subscription_start,
			us.end_date AS subscription_end, us.is_active, pp.name, pp.price, pp.features`).
		Joins("JOIN premium_plans pp ON us.plan_id = pp.id").
		Where("us.user_id = ? AND us.is_active = ?", userID, true).
		Order("us.end_date DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *SubscriptionRepositoryImpl) ListAll(db *gorm.DB) ([]models.AdminSubscription, error) {
	var rows []models.AdminSubscription
	err := db.Table("user_subscriptions s").
		Select(`s.id, s.user_id, s.plan_id, s.start_date, s.end_date, s.is_active,
			u.name AS user_name, u.email,
			COALESCE(p.name, 'Unknown Plan') AS plan_name, COALESCE(p.price, 0) AS price`).
		Joins("LEFT JOIN users u ON s.user_id = u.id").
		Joins("LEFT JOIN premium_plans p ON s.plan_id = p.id").
		Order("s.start_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *SubscriptionRepositoryImpl) UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) error {
	return db.Model(&models.UserSubscription{}).Where("id = ?", id).Updates(fields).Error
}

func (r *SubscriptionRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	return db.Delete(&models.UserSubscription{}, id).Error
}

func (r *SubscriptionRepositoryImpl) PremiumUsers(db *gorm.DB) ([]models.PremiumUser, error) {
	var rows []models.PremiumUser
	err := db.Table("user_subscriptions s").
		Select(`u.id, u.name, u.email, s.id AS subscription_id, s.plan_id, s.start_date, s.end_date, s.is_active,
			COALESCE(p.name, 'Unknown Plan') AS plan_name, COALESCE(p.price, 0) AS price,
			CASE
				WHEN s.end_date IS NULL THEN 1
				WHEN p.duration_days >= 365 OR p.name LIKE '%Lifetime%' OR p.id = ? THEN 1
				ELSE 0
			END AS is_lifetime`, models.LegacyLifetimePlanID).
		Joins("INNER JOIN users u ON s.user_id = u.id").
		Joins("LEFT JOIN premium_plans p ON s.plan_id = p.id").
		Where("s.is_active = 1 AND (s.end_date IS NULL OR s.end_date >= CURDATE())").
		Order("s.start_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *SubscriptionRepositoryImpl) ExpireOverdue(db *gorm.DB) (int64, error) {
	res := db.Exec(`UPDATE user_subscriptions SET is_active = 0
		WHERE is_active = 1 AND end_date IS NOT NULL AND end_date < NOW()`)
	return res.RowsAffected, res.Error
}
