package repositories

import (
	"errors"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPortfolioItemNotFound = errors.New("portfolio item not found")

// PortfolioRepository manages the legacy portfolio_items rows.
type PortfolioRepository interface {
	ListByUser(db *gorm.DB, userID int64) ([]models.PortfolioItem, error)
	Create(db *gorm.DB, item *models.PortfolioItem) error
	Update(db *gorm.DB, id, userID int64, fields map[string]interface{}) error
	Delete(db *gorm.DB, id, userID int64) error
}

type PortfolioRepositoryImpl struct{}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

// ListByUser returns the user's items newest first. A missing table yields none.
func (r *PortfolioRepositoryImpl) ListByUser(db *gorm.DB, userID int64) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	if err != nil && IsMissingTable(err) {
		return []models.PortfolioItem{}, nil
	}
	return items, err
}

func (r *PortfolioRepositoryImpl) Create(db *gorm.DB, item *models.PortfolioItem) error {
	return db.Create(item).Error
}

func (r *PortfolioRepositoryImpl) Update(db *gorm.DB, id, userID int64, fields map[string]interface{}) error {
	var n int64
	if err := db.Model(&models.PortfolioItem{}).Where("id = ? AND user_id = ?", id, userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrPortfolioItemNotFound
	}
	if len(fields) == 0 {
		return nil
	}
	return db.Model(&models.PortfolioItem{}).Where("id = ? AND user_id = ?", id, userID).Updates(fields).Error
}

func (r *PortfolioRepositoryImpl) Delete(db *gorm.DB, id, userID int64) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.PortfolioItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPortfolioItemNotFound
	}
	return nil
}
