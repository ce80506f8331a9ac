package dto

type CreateCastingCallRequest struct {
	ProjectTitle   string   `json:"project_title"`
	Role           string   `json:"role"`
	Gender         *string  `json:"gender"`
	MinAge         *int     `json:"min_age" validate:"omitempty,min=0"`
	MaxAge         *int     `json:"max_age" validate:"omitempty,min=0"`
	SkillsRequired *string  `json:"skills_required"`
	Location       *string  `json:"location"`
	BudgetPerDay   *float64 `json:"budget_per_day" validate:"omitempty,min=0"`
	AuditionDate   *string  `json:"audition_date"`
	Description    *string  `json:"description"`
}

type ApplyRequest struct {
	CastingCallID int64   `json:"casting_call_id"`
	AuditionLink  *string `json:"audition_link"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type CastingSearchRequest struct {
	Role      string   `form:"role"`
	Gender    string   `form:"gender"`
	Location  string   `form:"location"`
	MinBudget *float64 `form:"min_budget"`
	MaxBudget *float64 `form:"max_budget"`
	Keyword   string   `form:"keyword"`
	Page      int      `form:"page"`
	Limit     int      `form:"limit"`
}

type ProfileSearchRequest struct {
	Category      string `form:"category"`
	MinExperience *int   `form:"min_experience"`
	Skills        string `form:"skills"`
	Location      string `form:"location"`
	Page          int    `form:"page"`
	Limit         int    `form:"limit"`
}
