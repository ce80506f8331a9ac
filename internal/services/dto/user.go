package dto

// UpdateProfileRequest - only the fields present in the body are written.
type UpdateProfileRequest struct {
	Name         *string `json:"name"`
	Contact      *string `json:"contact"`
	Gender       *string `json:"gender"`
	DOB          *string `json:"dob"`
	Location     *string `json:"location"`
	Bio          *string `json:"bio"`
	PortfolioURL *string `json:"portfolio_url"`
	Availability *string `json:"availability"`
}

type UpdateActorRequest struct {
	Category        *string  `json:"category"`
	HeightCM        *float64 `json:"height_cm"`
	WeightKG        *float64 `json:"weight_kg"`
	Skills          *string  `json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
	AuditionLink    *string  `json:"audition_link"`
	Awards          *string  `json:"awards"`
}

// TalentSearchRequest is read from the query string on GET and from the body on POST.
type TalentSearchRequest struct {
	Search   string `json:"search" form:"search"`
	Category string `json:"category" form:"category"`
	Page     int    `json:"page" form:"page"`
	Limit    int    `json:"limit" form:"limit"`
}

type UpdateTechnicianRequest struct {
	Specialization  *string  `json:"specialization"`
	ExperienceYears *int     `json:"experience_years" validate:"omitempty,min=0"`
	HourlyRate      *float64 `json:"hourly_rate" validate:"omitempty,min=0"`
	Availability    *string  `json:"availability"`
	PortfolioLink   *string  `json:"portfolio_link"`
	Certifications  *string  `json:"certifications"`
}
