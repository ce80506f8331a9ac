package services

import (
	"context"
	"net/http"
	"testing"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/push"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushService_DeviceTokens(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: 1})
	svc := NewPushService(users, nil)

	assert.ErrorIs(t, svc.RegisterDevice(nil, 1, "   "), errDeviceTokenRequired)
	require.NoError(t, svc.RegisterDevice(nil, 1, " tok-1 "))

	token, err := svc.DeviceToken(nil, 1)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "tok-1", *token)

	require.NoError(t, svc.UnregisterDevice(nil, 1))
	token, err = svc.DeviceToken(nil, 1)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestPushService_Validation(t *testing.T) {
	svc := NewPushService(newFakeUserRepo(), nil)
	ctx := context.Background()

	_, err := svc.SendToDevice(ctx, &dto.SendToDeviceRequest{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, errSendDeviceFields)

	_, err = svc.SendToDevices(ctx, &dto.SendToDevicesRequest{Title: "t", Body: "b"})
	assert.ErrorIs(t, err, errSendTokensRequired)

	_, err = svc.SendToDevices(ctx, &dto.SendToDevicesRequest{DeviceTokens: []string{"a"}})
	assert.ErrorIs(t, err, errTitleBodyRequired)

	_, err = svc.SendToTopic(ctx, &dto.SendToTopicRequest{Topic: "news"})
	assert.ErrorIs(t, err, errSendTopicFields)

	_, err = svc.SubscribeToTopic(ctx, &dto.TopicSubscriptionRequest{Topic: "news"})
	assert.ErrorIs(t, err, errTopicFields)
}

func TestPushService_NotConfigured(t *testing.T) {
	svc := NewPushService(newFakeUserRepo(), push.Disabled{})

	_, err := svc.SendToDevice(context.Background(), &dto.SendToDeviceRequest{DeviceToken: "x", Title: "t", Body: "b"})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	assert.Equal(t, push.ErrNotInitialized.Error(), appErr.Message)
}

func TestPushService_SendToUser(t *testing.T) {
	token := "device-9"
	users := newFakeUserRepo(&models.User{ID: 1}, &models.User{ID: 2, FCMToken: &token})
	messenger := &fakeMessenger{}
	svc := NewPushService(users, messenger)
	ctx := context.Background()

	_, err := svc.SendToUser(ctx, nil, &dto.SendToUserRequest{UserID: 1})
	assert.ErrorIs(t, err, errSendUserFields)

	_, err = svc.SendToUser(ctx, nil, &dto.SendToUserRequest{UserID: 1, Title: "t", Body: "b"})
	assert.ErrorIs(t, err, errNoFCMToken)

	id, err := svc.SendToUser(ctx, nil, &dto.SendToUserRequest{UserID: 2, Title: "t", Body: "b"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, []string{"device-9"}, messenger.tokens)
}
