package models

import (
	"time"

	"gorm.io/datatypes"
)

// LegacyLifetimePlanID is the plan id historically used for lifetime access.
const LegacyLifetimePlanID int64 = 7

type PremiumPlan struct {
	ID           int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Price        float64        `gorm:"type:decimal(10,2);default:0" json:"price"`
	DurationDays *int           `json:"duration_days"`
	Features     datatypes.JSON `json:"features"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (PremiumPlan) TableName() string { return "premium_plans" }

// Duration returns duration_days, or 365 when unset.
func (p *PremiumPlan) Duration() int {
	if p.DurationDays == nil || *p.DurationDays <= 0 {
		return 365
	}
	return *p.DurationDays
}

type UserSubscription struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64      `gorm:"index;not null" json:"user_id"`
	PlanID    int64      `gorm:"index;not null" json:"plan_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  bool       `json:"is_active"`
}

func (UserSubscription) TableName() string { return "user_subscriptions" }

// ActivePlan is a user's current subscription joined with its plan.
type ActivePlan struct {
	ID           int64      `json:"id"`
	PlanID       int64      `json:"plan_id"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	IsActive     bool       `json:"is_active"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	DurationDays *int       `json:"duration_days"`
	Features     string     `json:"features"`
}

// SubscriptionWithPlan is user_subscriptions.* plus the plan name and features.
type SubscriptionWithPlan struct {
	UserSubscription
	Name     string         `json:"name"`
	Features datatypes.JSON `json:"features"`
}

// SubscriptionStatus is the /subscriptions/status row.
type SubscriptionStatus struct {
	ID                int64          `json:"id"`
	UserID            int64          `json:"user_id"`
	PlanID            int64          `json:"plan_id"`
	SubscriptionStart time.Time      `json:"subscription_start"`
	SubscriptionEnd   *time.Time     `json:"subscription_end"`
	IsActive          bool           `json:"is_active"`
	Name              string         `json:"name"`
	Price             float64        `json:"price"`
	Features          datatypes.JSON `json:"features"`
}

// AdminSubscription is a subscription row as listed on the admin dashboard.
type AdminSubscription struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	PlanID    int64      `json:"plan_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsActive  bool       `json:"is_active"`
	UserName  *string    `json:"user_name"`
	Email     *string    `json:"email"`
	PlanName  string     `json:"plan_name"`
	Price     float64    `json:"price"`
}

type PremiumUser struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	SubscriptionID int64      `json:"subscription_id"`
	PlanID         int64      `json:"plan_id"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	IsActive       bool       `json:"is_active"`
	PlanName       string     `json:"plan_name"`
	Price          float64    `json:"price"`
	IsLifetime     bool       `json:"is_lifetime"`
}
