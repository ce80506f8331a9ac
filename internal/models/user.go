package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	UserTypeActor           = "actor"
	UserTypeTechnician      = "technician"
	UserTypeProductionHouse = "production_house"
	UserTypeAdmin           = "admin"
	UserTypeStudio          = "studio"
	UserTypeMedia           = "media"
)

// MaxPortfolioImages caps users.portfolio_images.
const MaxPortfolioImages = 6

type User struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"column:password_hash;size:255" json:"-"`
	UserType        string         `gorm:"column:user_type;size:50;index" json:"user_type"`
	RoleID          *int64         `gorm:"index" json:"role_id"`
	Contact         *string        `gorm:"size:50" json:"contact"`
	Gender          *string        `gorm:"size:20" json:"gender"`
	DOB             *time.Time     `gorm:"column:dob;type:date" json:"dob"`
	Location        *string        `gorm:"size:255" json:"location"`
	Bio             *string        `gorm:"type:text" json:"bio"`
	PortfolioURL    *string        `gorm:"size:500" json:"portfolio_url"`
	Availability    *string        `gorm:"size:100" json:"availability"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	FCMToken        *string        `gorm:"column:fcm_token;size:512" json:"-"`
	PortfolioImages datatypes.JSON `gorm:"column:portfolio_images" json:"portfolio_images"`
	ProfileImageURL *string        `gorm:"size:1000" json:"profile_image_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PortfolioURLs decodes portfolio_images. A bare string counts as a single URL
// and anything unreadable yields an empty list.
func (u *User) PortfolioURLs() []string {
	return DecodePortfolioImages(u.PortfolioImages)
}

func DecodePortfolioImages(raw []byte) []string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []string{}
	}

	var urls []string
	if err := json.Unmarshal([]byte(trimmed), &urls); err == nil {
		out := make([]string, 0, len(urls))
		for _, u := range urls {
			if u != "" {
				out = append(out, u)
			}
		}
		return out
	}

	var single string
	if err := json.Unmarshal([]byte(trimmed), &single); err == nil {
		if single == "" {
			return []string{}
		}
		return []string{single}
	}

	if strings.HasPrefix(trimmed, "http") {
		return []string{trimmed}
	}
	return []string{}
}

// Actor holds actor-specific profile columns keyed by user id.
type Actor struct {
	UserID          int64    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Category        *string  `gorm:"size:100" json:"category"`
	HeightCM        *float64 `gorm:"column:height_cm" json:"height_cm"`
	WeightKG        *float64 `gorm:"column:weight_kg" json:"weight_kg"`
	Skills          *string  `gorm:"type:text" json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
	AuditionLink    *string  `gorm:"size:500" json:"audition_link"`
	Awards          *string  `gorm:"type:text" json:"awards"`
	Profession      *string  `gorm:"size:100" json:"profession"`
	Instagram       *string  `gorm:"size:255" json:"instagram"`
	Youtube         *string  `gorm:"size:255" json:"youtube"`
}

func (Actor) TableName() string { return "actors" }

type Technician struct {
	UserID          int64    `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	Specialization  *string  `gorm:"size:100;index" json:"specialization"`
	ExperienceYears *int     `json:"experience_years"`
	Location        *string  `gorm:"size:255" json:"location"`
	Equipment       *string  `gorm:"type:text" json:"equipment"`
	PortfolioURL    *string  `gorm:"size:500" json:"portfolio_url"`
	Bio             *string  `gorm:"type:text" json:"bio"`
	HourlyRate      *float64 `json:"hourly_rate"`
	Availability    *string  `gorm:"size:100" json:"availability"`
	PortfolioLink   *string  `gorm:"size:500" json:"portfolio_link"`
	Certifications  *string  `gorm:"type:text" json:"certifications"`
}

func (Technician) TableName() string { return "technicians" }

// ActorProfile is the users ⋈ actors row returned by the actor endpoints.
type ActorProfile struct {
	User
	Category        *string  `json:"category"`
	HeightCM        *float64 `gorm:"column:height_cm" json:"height_cm"`
	WeightKG        *float64 `gorm:"column:weight_kg" json:"weight_kg"`
	Skills          *string  `json:"skills"`
	ExperienceYears *int     `json:"experience_years"`
	AuditionLink    *string  `json:"audition_link"`
	Awards          *string  `json:"awards"`
	Profession      *string  `json:"profession"`
	Instagram       *string  `json:"instagram"`
	Youtube         *string  `json:"youtube"`
}
