package services

import (
	"context"
	"errors"
	"strconv"

	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/push"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var errNotificationNotFound = apperrors.NewNotFoundError("notification", "Notification not found")

type NotificationService interface {
	List(db *gorm.DB, userID int64, page, limit int) ([]models.Notification, int64, error)
	UnreadCount(db *gorm.DB, userID int64) (int64, error)
	MarkAsRead(db *gorm.DB, id, userID int64) error
	MarkAllAsRead(db *gorm.DB, userID int64) error
	Delete(db *gorm.DB, id, userID int64) error

	// Notify stores an in-app notification and pushes it to the user's device
	// when one is registered.
	Notify(ctx context.Context, db *gorm.DB, userID int64, title, message, kind string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	messenger        push.Messenger
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	messenger push.Messenger,
) NotificationService {
	if messenger == nil {
		messenger = push.Disabled{}
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		messenger:        messenger,
	}
}

func (s *notificationService) List(db *gorm.DB, userID int64, page, limit int) ([]models.Notification, int64, error) {
	items, total, err := s.notificationRepo.ListForUser(db, userID, page, limit)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	if items == nil {
		items = []models.Notification{}
	}
	return items, total, nil
}

func (s *notificationService) UnreadCount(db *gorm.DB, userID int64) (int64, error) {
	n, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return n, nil
}

func (s *notificationService) MarkAsRead(db *gorm.DB, id, userID int64) error {
	return handleNotificationError(s.notificationRepo.MarkAsRead(db, id, userID))
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID int64) error {
	if err := s.notificationRepo.MarkAllAsRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) Delete(db *gorm.DB, id, userID int64) error {
	return handleNotificationError(s.notificationRepo.Delete(db, id, userID))
}

func (s *notificationService) Notify(ctx context.Context, db *gorm.DB, userID int64, title, message, kind string) error {
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	}
	if err := s.notificationRepo.Create(db, n); err != nil {
		return apperrors.InternalError(err)
	}

	if !s.messenger.Enabled() {
		return nil
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil || user.FCMToken == nil || *user.FCMToken == "" {
		return nil
	}
	_, err = s.messenger.SendToToken(ctx, *user.FCMToken, push.Notification{
		Title: title,
		Body:  message,
		Data: map[string]string{
			"type":            kind,
			"notification_id": strconv.FormatInt(n.ID, 10),
		},
	})
	if err != nil {
		logger.CtxWithError(ctx, "Push delivery failed", err, "user_id", userID)
	}
	return nil
}

func handleNotificationError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrNotificationNotFound) {
		return errNotificationNotFound
	}
	return apperrors.InternalError(err)
}
