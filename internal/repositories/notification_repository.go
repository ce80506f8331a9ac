package repositories

import (
	"errors"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification types written by the API.
const (
	NotificationTypeApplicationStatus = "application_status"
	NotificationTypeNewMessage        = "new_message"
	NotificationTypeSubscription      = "subscription"
)

type NotificationRepository interface {
	Create(db *gorm.DB, n *models.Notification) error
	ListForUser(db *gorm.DB, userID int64, page, limit int) ([]models.Notification, int64, error)
	CountUnread(db *gorm.DB, userID int64) (int64, error)
	MarkAsRead(db *gorm.DB, id, userID int64) error
	MarkAllAsRead(db *gorm.DB, userID int64) error
	Delete(db *gorm.DB, id, userID int64) error
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, n *models.Notification) error {
	return db.Create(n).Error
}

func (r *NotificationRepositoryImpl) ListForUser(db *gorm.DB, userID int64, page, limit int) ([]models.Notification, int64, error) {
	var total int64
	if err := db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Notification
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset(page, limit)).
		Find(&items).Error
	return items, total, err
}

func (r *NotificationRepositoryImpl) CountUnread(db *gorm.DB, userID int64) (int64, error) {
	var n int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, id, userID int64) error {
	res := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Already read rows report zero affected rows on MySQL.
		return r.ensureOwned(db, id, userID)
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID int64) error {
	return db.Model(&models.Notification{}).Where("user_id = ?", userID).Update("is_read", true).Error
}

func (r *NotificationRepositoryImpl) Delete(db *gorm.DB, id, userID int64) error {
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) ensureOwned(db *gorm.DB, id, userID int64) error {
	var n int64
	if err := db.Model(&models.Notification{}).Where("id = ? AND user_id = ?", id, userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
