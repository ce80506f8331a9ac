package repositories

import (
	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

// AnalyticsRepository runs the aggregate queries behind the admin analytics
// screens. Optional tables count as empty.
type AnalyticsRepository interface {
	PlatformStats(db *gorm.DB) (*PlatformStats, error)
	RegistrationTrends(db *gorm.DB, days int) ([]RegistrationTrend, error)
	RevenueByPlan(db *gorm.DB) ([]PlanRevenue, float64, error)
	ActiveRevenue(db *gorm.DB) (float64, error)
	UsersInMonth(db *gorm.DB, monthsAgo int) (int64, error)
	UserDistribution(db *gorm.DB) ([]UserTypeCount, error)
	MonthlyUsers(db *gorm.DB, months int) ([]MonthlyCount, error)
	MonthlyRevenue(db *gorm.DB, months int) ([]MonthlyRevenue, error)
}

type AnalyticsRepositoryImpl struct{}

type PlatformStats struct {
	TotalUsers          int64 `json:"total_users"`
	TotalActors         int64 `json:"total_actors"`
	TotalTechnicians    int64 `json:"total_technicians"`
	TotalProdHouses     int64 `json:"total_prod_houses"`
	ActiveCastingCalls  int64 `json:"active_casting_calls"`
	TotalApplications   int64 `json:"total_applications"`
	TotalSubscriptions  int64 `json:"total_subscriptions"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
}

type RegistrationTrend struct {
	Date  string `json:"date"`
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type PlanRevenue struct {
	Name         *string  `json:"name"`
	Count        int64    `json:"count"`
	Price        *float64 `json:"price"`
	TotalRevenue float64  `json:"total_revenue"`
}

type UserTypeCount struct {
	UserType *string
	Count    int64
}

type MonthlyCount struct {
	Month string
	Users int64
}

type MonthlyRevenue struct {
	Month   string
	Revenue float64
}

func NewAnalyticsRepository() AnalyticsRepository {
	return &AnalyticsRepositoryImpl{}
}

func (r *AnalyticsRepositoryImpl) PlatformStats(db *gorm.DB) (*PlatformStats, error) {
	var s PlatformStats
	var err error

	if err = db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if s.TotalActors, err = countOrZero(db.Table("actors")); err != nil {
		return nil, err
	}
	if s.TotalTechnicians, err = countOrZero(db.Table("technicians")); err != nil {
		return nil, err
	}
	if s.TotalProdHouses, err = countOrZero(db.Table("users").Where("user_type = ?", models.UserTypeProductionHouse)); err != nil {
		return nil, err
	}
	if s.ActiveCastingCalls, err = countOrZero(db.Table("casting_calls").
		Where("audition_date >= CURDATE() OR audition_date IS NULL")); err != nil {
		return nil, err
	}
	if s.TotalApplications, err = countOrZero(db.Table("applications")); err != nil {
		return nil, err
	}
	if s.TotalSubscriptions, err = countOrZero(db.Table("user_subscriptions").Where("is_active = 1")); err != nil {
		return nil, err
	}
	if s.ActiveSubscriptions, err = countOrZero(db.Table("user_subscriptions").
		Where("is_active = 1 AND (end_date >= CURDATE() OR end_date IS NULL)")); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *AnalyticsRepositoryImpl) RegistrationTrends(db *gorm.DB, days int) ([]RegistrationTrend, error) {
	var rows []RegistrationTrend
	err := db.Table("users").
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') AS date, user_type AS role, COUNT(*) AS count").
		Where("created_at >= DATE_SUB(NOW(), INTERVAL ? DAY)", days).
		Group("DATE_FORMAT(created_at, '%Y-%m-%d'), user_type").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) RevenueByPlan(db *gorm.DB) ([]PlanRevenue, float64, error) {
	rows := []PlanRevenue{}
	err := db.Table("user_subscriptions us").
		Select("pp.name, COUNT(us.id) AS count, pp.price, COUNT(us.id) * COALESCE(pp.price, 0) AS total_revenue").
		Joins("LEFT JOIN premium_plans pp ON us.plan_id = pp.id").
		Where("us.is_active = 1").
		Group("us.plan_id, pp.name, pp.price").
		Scan(&rows).Error
	if err != nil {
		if IsMissingTable(err) {
			return []PlanRevenue{}, 0, nil
		}
		return nil, 0, err
	}

	var total float64
	err = db.Table("user_subscriptions us").
		Select("COALESCE(SUM(pp.price), 0)").
		Joins("LEFT JOIN premium_plans pp ON us.plan_id = pp.id").
		Where("us.is_active = 1").
		Scan(&total).Error
	if err != nil && !IsMissingTable(err) {
		return nil, 0, err
	}
	return rows, total, nil
}

// ActiveRevenue sums plan prices of subscriptions active today.
func (r *AnalyticsRepositoryImpl) ActiveRevenue(db *gorm.DB) (float64, error) {
	var total float64
	err := db.Table("user_subscriptions us").
		Select("COALESCE(SUM(pp.price), 0)").
		Joins("LEFT JOIN premium_plans pp ON us.plan_id = pp.id").
		Where("us.is_active = 1 AND (us.end_date >= CURDATE() OR us.end_date IS NULL)").
		Scan(&total).Error
	if err != nil && IsMissingTable(err) {
		return 0, nil
	}
	return total, err
}

// UsersInMonth counts registrations in the calendar month monthsAgo months back.
func (r *AnalyticsRepositoryImpl) UsersInMonth(db *gorm.DB, monthsAgo int) (int64, error) {
	var n int64
	err := db.Model(&models.User{}).
		Where("MONTH(created_at) = MONTH(DATE_SUB(CURDATE(), INTERVAL ? MONTH)) AND YEAR(created_at) = YEAR(DATE_SUB(CURDATE(), INTERVAL ? MONTH))",
			monthsAgo, monthsAgo).
		Count(&n).Error
	return n, err
}

func (r *AnalyticsRepositoryImpl) UserDistribution(db *gorm.DB) ([]UserTypeCount, error) {
	var rows []UserTypeCount
	err := db.Table("users").
		Select("user_type, COUNT(*) AS count").
		Group("user_type").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) MonthlyUsers(db *gorm.DB, months int) ([]MonthlyCount, error) {
	var rows []MonthlyCount
	err := db.Table("users").
		Select("DATE_FORMAT(created_at, '%b') AS month, COUNT(*) AS users").
		Where("created_at >= DATE_SUB(CURDATE(), INTERVAL ? MONTH)", months).
		Group("DATE_FORMAT(created_at, '%Y-%m'), DATE_FORMAT(created_at, '%b')").
		Order("DATE_FORMAT(created_at, '%Y-%m') ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepositoryImpl) MonthlyRevenue(db *gorm.DB, months int) ([]MonthlyRevenue, error) {
	var rows []MonthlyRevenue
	err := db.Table("user_subscriptions us").
		Select("DATE_FORMAT(us.start_date, '%b') AS month, COALESCE(SUM(pp.price), 0) AS revenue").
		Joins("LEFT JOIN premium_plans pp ON us.plan_id = pp.id").
		Where("us.start_date >= DATE_SUB(CURDATE(), INTERVAL ? MONTH)", months).
		Group("DATE_FORMAT(us.start_date, '%Y-%m'), DATE_FORMAT(us.start_date, '%b')").
		Order("DATE_FORMAT(us.start_date, '%Y-%m') ASC").
		Scan(&rows).Error
	if err != nil && IsMissingTable(err) {
		return nil, nil
	}
	return rows, err
}
