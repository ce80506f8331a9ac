package repositories

import (
	"errors"
	"time"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDeleteRequestNotFound = errors.New("delete account request not found")

type DeleteRequestRepository interface {
	Create(db *gorm.DB, req *models.DeleteAccountRequest) error
	HasPending(db *gorm.DB, userID int64) (bool, error)
	FindByID(db *gorm.DB, id int64) (*models.DeleteAccountRequest, error)
	List(db *gorm.DB, status string) ([]models.DeleteAccountRequest, error)
	MarkProcessed(db *gorm.DB, id int64, status models.DeleteRequestStatus, processedBy int64) error
}

type DeleteRequestRepositoryImpl struct{}

func NewDeleteRequestRepository() DeleteRequestRepository {
	return &DeleteRequestRepositoryImpl{}
}

func (r *DeleteRequestRepositoryImpl) Create(db *gorm.DB, req *models.DeleteAccountRequest) error {
	return db.Create(req).Error
}

func (r *DeleteRequestRepositoryImpl) HasPending(db *gorm.DB, userID int64) (bool, error) {
	var n int64
	err := db.Model(&models.DeleteAccountRequest{}).
		Where("user_id = ? AND status = ?", userID, models.DeleteRequestPending).
		Count(&n).Error
	return n > 0, err
}

func (r *DeleteRequestRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.DeleteAccountRequest, error) {
	var req models.DeleteAccountRequest
	if err := db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeleteRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *DeleteRequestRepositoryImpl) List(db *gorm.DB, status string) ([]models.DeleteAccountRequest, error) {
	var reqs []models.DeleteAccountRequest
	q := db.Model(&models.DeleteAccountRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("requested_at DESC").Find(&reqs).Error
	return reqs, err
}

func (r *DeleteRequestRepositoryImpl) MarkProcessed(db *gorm.DB, id int64, status models.DeleteRequestStatus, processedBy int64) error {
	return db.Model(&models.DeleteAccountRequest{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       status,
		"processed_at": time.Now(),
		"processed_by": processedBy,
	}).Error
}
