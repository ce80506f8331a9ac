package dto

type Social struct {
	Instagram string `json:"instagram,omitempty"`
	Youtube   string `json:"youtube,omitempty"`
}

type Profile struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Profession      string   `json:"profession"`
	Location        string   `json:"location"`
	Avatar          string   `json:"avatar"`
	IsVerified      bool     `json:"is_verified"`
	ExperienceYears int      `json:"experience_years"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	Social          Social   `json:"social"`
}

type ProfileStats struct {
	ProfileViews int64 `json:"profile_views"`
	Connections  int64 `json:"connections"`
	Projects     int64 `json:"projects"`
}

type PortfolioEntry struct {
	ID          int64   `json:"id"`
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	WorkDate    *string `json:"work_date"`
}

type UserPlan struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	IsActive   bool     `json:"is_active"`
	Features   []string `json:"features"`
	ExpiryDate *string  `json:"expiry_date"`
}

// PlanSummary is the short plan block of the combined profile.
type PlanSummary struct {
	Name       string  `json:"name"`
	IsActive   bool    `json:"is_active"`
	ExpiryDate *string `json:"expiry_date"`
}

type FullProfile struct {
	Profile   Profile          `json:"profile"`
	Stats     ProfileStats     `json:"stats"`
	Portfolio []PortfolioEntry `json:"portfolio"`
	Plan      PlanSummary      `json:"plan"`
}

type Talent struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Role       string  `json:"role"`
	Location   string  `json:"location"`
	Rating     float64 `json:"rating"`
	Image      string  `json:"image"`
	IsFeatured bool    `json:"is_featured"`
}

type TalentFilters struct {
	Search       string `json:"search"`
	Category     string `json:"category"`
	Page         int    `json:"page"`
	Limit        int    `json:"limit"`
	TotalResults int64  `json:"total_results"`
}

type TalentList struct {
	Filters TalentFilters `json:"filters"`
	Talents []Talent      `json:"talents"`
}

type DashboardPlan struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        string  `json:"price"`
	DurationDays *int    `json:"duration_days"`
	Features     string  `json:"features"`
	ExpiryDate   *string `json:"expiry_date"`
	IsActive     bool    `json:"is_active"`
}

type FeaturedTalent struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Profession string `json:"profession"`
	Avatar     string `json:"avatar"`
	Location   string `json:"location"`
}

type TrendingJob struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Tag      string `json:"tag"`
	Location string `json:"location"`
	PostedOn string `json:"posted_on"`
}

type Dashboard struct {
	Plan            *DashboardPlan   `json:"plan"`
	Stats           ProfileStats     `json:"stats"`
	FeaturedTalents []FeaturedTalent `json:"featured_talents"`
	TrendingJobs    []TrendingJob    `json:"trending_jobs"`
}
