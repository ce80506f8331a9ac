package dto

type VerifyUserRequest struct {
	IsVerified *bool `json:"is_verified"`
}

type CreateNewsRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url"`
}

type CreateFeaturedRequest struct {
	UserID int64 `json:"user_id"`
}

// CreateSubscriptionRequest - dates are YYYY-MM-DD or RFC3339.
type CreateSubscriptionRequest struct {
	UserID    int64  `json:"user_id"`
	PlanID    int64  `json:"plan_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  *bool  `json:"is_active"`
}

type UpdateSubscriptionRequest struct {
	PlanID    *int64  `json:"plan_id"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	IsActive  *bool   `json:"is_active"`
}

type AssignPremiumRequest struct {
	IsLifetime bool   `json:"is_lifetime"`
	PlanID     *int64 `json:"plan_id"`
}

type SubscribeRequest struct {
	PlanID int64 `json:"plan_id"`
}

// AdminDashboard is the admin landing page summary.
type AdminDashboard struct {
	TotalUsers        int64       `json:"totalUsers"`
	TotalCastingCalls int64       `json:"totalCastingCalls"`
	TotalApplications int64       `json:"totalApplications"`
	RecentUsers       interface{} `json:"recentUsers"`
}
