package repositories

import (
	"errors"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTechnicianNotFound = errors.New("technician not found")

type TechnicianRepository interface {
	List(db *gorm.DB, filter TechnicianFilter) ([]TechnicianRow, int64, error)
	FindByUserID(db *gorm.DB, userID int64) (*TechnicianDetail, error)
	Upsert(db *gorm.DB, userID int64, fields map[string]interface{}) error
}

type TechnicianRepositoryImpl struct{}

type TechnicianFilter struct {
	Specialization string
	ExperienceMin  *int
	Location       string
	Page           int
	Limit          int
}

type TechnicianRow struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	ProfilePicture  *string  `json:"profile_picture"`
	Specialization  *string  `json:"specialization"`
	ExperienceYears *int     `json:"experience_years"`
	HourlyRate      *float64 `json:"hourly_rate"`
	Availability    *string  `json:"availability"`
	PortfolioLink   *string  `json:"portfolio_link"`
	AvgRating       *float64 `json:"avg_rating"`
	TotalReviews    int64    `json:"total_reviews"`
}

type TechnicianDetail struct {
	TechnicianRow
	Location       *string `json:"location"`
	Phone          *string `json:"phone"`
	Certifications *string `json:"certifications"`
}

func NewTechnicianRepository() TechnicianRepository {
	return &TechnicianRepositoryImpl{}
}

func (r *TechnicianRepositoryImpl) scope(db *gorm.DB, filter TechnicianFilter) *gorm.DB {
	q := db.Table("users u").
		Joins("JOIN technicians t ON u.id = t.user_id").
		Where("u.is_active = ?", true)
	if filter.Specialization != "" {
		q = q.Where("t.specialization = ?", filter.Specialization)
	}
	if filter.ExperienceMin != nil {
		q = q.Where("t.experience_years >= ?", *filter.ExperienceMin)
	}
	if filter.Location != "" {
		q = q.Where("u.location LIKE ?", likePattern(filter.Location))
	}
	return q
}

func (r *TechnicianRepositoryImpl) List(db *gorm.DB, filter TechnicianFilter) ([]TechnicianRow, int64, error) {
	var total int64
	if err := r.scope(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TechnicianRow
	err := r.scope(db, filter).
		Select(`u.id, u.name, u.email, u.profile_image_url AS profile_picture, t.specialization,
			t.experience_years, t.hourly_rate, t.availability, t.portfolio_link,
			AVG(rr.rating) AS avg_rating, COUNT(rr.id) AS total_reviews`).
		Joins("LEFT JOIN ratings_reviews rr ON u.id = rr.reviewed_user_id").
		Group("u.id").
		Order("u.id").
		Limit(filter.Limit).
		Offset(offset(filter.Page, filter.Limit)).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *TechnicianRepositoryImpl) FindByUserID(db *gorm.DB, userID int64) (*TechnicianDetail, error) {
	var rows []TechnicianDetail
	err := db.Table("users u").
		Select(`u.id, u.name, u.email, u.profile_image_url AS profile_picture, u.location, u.contact AS phone,
			t.specialization, t.experience_years, t.hourly_rate, t.availability,
			t.portfolio_link, t.certifications,
			AVG(rr.rating) AS avg_rating, COUNT(rr.id) AS total_reviews`).
		Joins("JOIN technicians t ON u.id = t.user_id").
		Joins("LEFT JOIN ratings_reviews rr ON u.id = rr.reviewed_user_id").
		Where("u.id = ?", userID).
		Group("u.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrTechnicianNotFound
	}
	return &rows[0], nil
}

// Upsert writes the given technician columns, creating the row if needed.
func (r *TechnicianRepositoryImpl) Upsert(db *gorm.DB, userID int64, fields map[string]interface{}) error {
	row := map[string]interface{}{"user_id": userID}
	columns := make([]string, 0, len(fields))
	for k, v := range fields {
		row[k] = v
		columns = append(columns, k)
	}
	q := db.Model(&models.Technician{})
	if len(columns) > 0 {
		q = q.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		})
	} else {
		q = q.Clauses(clause.OnConflict{DoNothing: true})
	}
	return q.Create(row).Error
}
