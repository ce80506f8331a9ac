package repositories

import (
	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

// ContentRepository holds the admin-curated news feed and featured profiles.
type ContentRepository interface {
	ListNews(db *gorm.DB) ([]models.News, error)
	CreateNews(db *gorm.DB, news *models.News) error
	DeleteNews(db *gorm.DB, id int64) error

	ListFeatured(db *gorm.DB) ([]models.FeaturedProfileListing, error)
	CreateFeatured(db *gorm.DB, fp *models.FeaturedProfile) error
}

type ContentRepositoryImpl struct{}

func NewContentRepository() ContentRepository {
	return &ContentRepositoryImpl{}
}

func (r *ContentRepositoryImpl) ListNews(db *gorm.DB) ([]models.News, error) {
	var news []models.News
	err := db.Order("created_at DESC").Find(&news).Error
	return news, err
}

func (r *ContentRepositoryImpl) CreateNews(db *gorm.DB, news *models.News) error {
	return db.Create(news).Error
}

func (r *ContentRepositoryImpl) DeleteNews(db *gorm.DB, id int64) error {
	return db.Delete(&models.News{}, id).Error
}

func (r *ContentRepositoryImpl) ListFeatured(db *gorm.DB) ([]models.FeaturedProfileListing, error) {
	var rows []models.FeaturedProfileListing
	err := db.Table("featured_profiles f").
		Select("f.*, u.name, u.email, u.user_type AS role").
		Joins("JOIN users u ON f.user_id = u.id").
		Order("f.featured_date DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ContentRepositoryImpl) CreateFeatured(db *gorm.DB, fp *models.FeaturedProfile) error {
	return db.Create(fp).Error
}
