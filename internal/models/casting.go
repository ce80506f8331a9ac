package models

import "time"

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationSelected    ApplicationStatus = "selected"
	ApplicationRejected    ApplicationStatus = "rejected"
)

func IsValidApplicationStatus(s string) bool {
	switch ApplicationStatus(s) {
	case ApplicationApplied, ApplicationShortlisted, ApplicationSelected, ApplicationRejected:
		return true
	}
	return false
}

type CastingCall struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductionHouseID int64      `gorm:"index;not null" json:"production_house_id"`
	ProjectTitle      string     `gorm:"size:255" json:"project_title"`
	Role              string     `gorm:"size:255" json:"role"`
	Gender            *string    `gorm:"size:20" json:"gender"`
	MinAge            *int       `json:"min_age"`
	MaxAge            *int       `json:"max_age"`
	SkillsRequired    *string    `gorm:"type:text" json:"skills_required"`
	Location          *string    `gorm:"size:255" json:"location"`
	BudgetPerDay      *float64   `json:"budget_per_day"`
	AuditionDate      *time.Time `gorm:"type:date" json:"audition_date"`
	Description       *string    `gorm:"type:text" json:"description"`
	IsApproved        bool       `gorm:"default:false" json:"is_approved"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (CastingCall) TableName() string { return "casting_calls" }

// CastingCallListing is a casting call joined with its production house and
// application count.
type CastingCallListing struct {
	CastingCall
	ProductionHouseName string `json:"production_house_name"`
	TotalApplications   int64  `json:"total_applications"`
}

type Application struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	CastingCallID int64             `gorm:"index;not null" json:"casting_call_id"`
	ApplicantID   int64             `gorm:"index;not null" json:"applicant_id"`
	AuditionLink  *string           `gorm:"size:500" json:"audition_link"`
	Status        ApplicationStatus `gorm:"size:20;default:applied" json:"status"`
	AppliedAt     time.Time         `gorm:"autoCreateTime" json:"applied_at"`
}

func (Application) TableName() string { return "applications" }

// MyApplication is an applicant's view of one of their applications.
type MyApplication struct {
	Application
	ProjectTitle    string `json:"project_title"`
	Role            string `json:"role"`
	ProductionHouse string `json:"production_house"`
}

// ApplicantApplication is the admin view of an application.
type ApplicantApplication struct {
	Application
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
}
