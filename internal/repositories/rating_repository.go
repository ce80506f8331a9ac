package repositories

import (
	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(db *gorm.DB, rating *models.Rating) error
	ListForUser(db *gorm.DB, userID int64) ([]models.RatingWithReviewer, error)
}

type RatingRepositoryImpl struct{}

func NewRatingRepository() RatingRepository {
	return &RatingRepositoryImpl{}
}

func (r *RatingRepositoryImpl) Create(db *gorm.DB, rating *models.Rating) error {
	return db.Create(rating).Error
}

func (r *RatingRepositoryImpl) ListForUser(db *gorm.DB, userID int64) ([]models.RatingWithReviewer, error) {
	var rows []models.RatingWithReviewer
	err := db.Table("ratings_reviews r").
		Select("r.*, u.name AS reviewer_name").
		Joins("JOIN users u ON r.reviewer_id = u.id").
		Where("r.reviewed_user_id = ?", userID).
		Order("r.created_at DESC").
		Scan(&rows).Error
	return rows, err
}
