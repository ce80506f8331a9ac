package services

import (
	"context"
	"errors"
	"strings"

	"cinemarathi_backend/internal/push"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

var (
	errDeviceTokenRequired = apperrors.NewBadRequestError("Device token is required")
	errSendDeviceFields    = apperrors.NewBadRequestError("device_token, title, and body are required")
	errSendTokensRequired  = apperrors.NewBadRequestError("device_tokens array is required and must not be empty")
	errTitleBodyRequired   = apperrors.NewBadRequestError("title and body are required")
	errSendUserFields      = apperrors.NewBadRequestError("user_id, title, and body are required")
	errNoFCMToken          = apperrors.NewNotFoundError("push", "No FCM token found for this user")
	errSendTopicFields     = apperrors.NewBadRequestError("topic, title, and body are required")
	errTopicFields         = apperrors.NewBadRequestError("device_tokens and topic are required")
)

// PushService manages device tokens and sends Firebase notifications.
type PushService interface {
	RegisterDevice(db *gorm.DB, userID int64, token string) error
	UnregisterDevice(db *gorm.DB, userID int64) error
	DeviceToken(db *gorm.DB, userID int64) (*string, error)

	SendToDevice(ctx context.Context, req *dto.SendToDeviceRequest) (string, error)
	SendToDevices(ctx context.Context, req *dto.SendToDevicesRequest) (*push.BatchResult, error)
	SendToUser(ctx context.Context, db *gorm.DB, req *dto.SendToUserRequest) (string, error)
	SendToTopic(ctx context.Context, req *dto.SendToTopicRequest) (string, error)
	SubscribeToTopic(ctx context.Context, req *dto.TopicSubscriptionRequest) (*push.TopicResult, error)
	UnsubscribeFromTopic(ctx context.Context, req *dto.TopicSubscriptionRequest) (*push.TopicResult, error)
}

type pushService struct {
	userRepo  repositories.UserRepository
	messenger push.Messenger
}

func NewPushService(userRepo repositories.UserRepository, messenger push.Messenger) PushService {
	if messenger == nil {
		messenger = push.Disabled{}
	}
	return &pushService{userRepo: userRepo, messenger: messenger}
}

func (s *pushService) RegisterDevice(db *gorm.DB, userID int64, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errDeviceTokenRequired
	}
	if err := s.userRepo.SetFCMToken(db, userID, &token); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *pushService) UnregisterDevice(db *gorm.DB, userID int64) error {
	if err := s.userRepo.SetFCMToken(db, userID, nil); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *pushService) DeviceToken(db *gorm.DB, userID int64) (*string, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if user.FCMToken == nil || *user.FCMToken == "" {
		return nil, nil
	}
	return user.FCMToken, nil
}

func (s *pushService) SendToDevice(ctx context.Context, req *dto.SendToDeviceRequest) (string, error) {
	if blank(req.DeviceToken) || blank(req.Title) || blank(req.Body) {
		return "", errSendDeviceFields
	}
	id, err := s.messenger.SendToToken(ctx, req.DeviceToken, notification(req.Title, req.Body, req.ImageURL, req.Data))
	if err != nil {
		return "", pushError(err)
	}
	return id, nil
}

func (s *pushService) SendToDevices(ctx context.Context, req *dto.SendToDevicesRequest) (*push.BatchResult, error) {
	if len(req.DeviceTokens) == 0 {
		return nil, errSendTokensRequired
	}
	if blank(req.Title) || blank(req.Body) {
		return nil, errTitleBodyRequired
	}
	res, err := s.messenger.SendToTokens(ctx, req.DeviceTokens, notification(req.Title, req.Body, req.ImageURL, req.Data))
	if err != nil {
		return nil, pushError(err)
	}
	return res, nil
}

func (s *pushService) SendToUser(ctx context.Context, db *gorm.DB, req *dto.SendToUserRequest) (string, error) {
	if req.UserID == 0 || blank(req.Title) || blank(req.Body) {
		return "", errSendUserFields
	}
	token, err := s.DeviceToken(db, req.UserID)
	if err != nil {
		return "", err
	}
	if token == nil {
		return "", errNoFCMToken
	}
	id, err := s.messenger.SendToToken(ctx, *token, notification(req.Title, req.Body, req.ImageURL, req.Data))
	if err != nil {
		return "", pushError(err)
	}
	return id, nil
}

func (s *pushService) SendToTopic(ctx context.Context, req *dto.SendToTopicRequest) (string, error) {
	if blank(req.Topic) || blank(req.Title) || blank(req.Body) {
		return "", errSendTopicFields
	}
	id, err := s.messenger.SendToTopic(ctx, req.Topic, notification(req.Title, req.Body, req.ImageURL, req.Data))
	if err != nil {
		return "", pushError(err)
	}
	return id, nil
}

func (s *pushService) SubscribeToTopic(ctx context.Context, req *dto.TopicSubscriptionRequest) (*push.TopicResult, error) {
	if len(req.DeviceTokens) == 0 || blank(req.Topic) {
		return nil, errTopicFields
	}
	res, err := s.messenger.SubscribeToTopic(ctx, req.DeviceTokens, req.Topic)
	if err != nil {
		return nil, pushError(err)
	}
	return res, nil
}

func (s *pushService) UnsubscribeFromTopic(ctx context.Context, req *dto.TopicSubscriptionRequest) (*push.TopicResult, error) {
	if len(req.DeviceTokens) == 0 || blank(req.Topic) {
		return nil, errTopicFields
	}
	res, err := s.messenger.UnsubscribeFromTopic(ctx, req.DeviceTokens, req.Topic)
	if err != nil {
		return nil, pushError(err)
	}
	return res, nil
}

func notification(title, body, imageURL string, data map[string]any) push.Notification {
	return push.Notification{
		Title:    title,
		Body:     body,
		ImageURL: imageURL,
		Data:     push.StringifyData(data),
	}
}

func pushError(err error) error {
	if errors.Is(err, push.ErrNotInitialized) {
		return apperrors.NewExternalError(err, "push", push.ErrNotInitialized.Error())
	}
	return apperrors.NewExternalError(err, "push", err.Error())
}
