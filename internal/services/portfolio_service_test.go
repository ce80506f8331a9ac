package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/storage"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portfolioOf(t *testing.T, n int) []byte {
	t.Helper()
	urls := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		urls = append(urls, "https://cdn.cine.in/portfolio/old-"+string(rune('0'+i))+".jpg")
	}
	raw, err := json.Marshal(urls)
	require.NoError(t, err)
	return raw
}

func newPortfolioFixture(t *testing.T, existing int) (PortfolioService, *fakeUserRepo) {
	t.Helper()
	store, err := storage.NewLocalStorage(storage.Config{BasePath: t.TempDir(), PublicBaseURL: "https://cdn.cine.in"})
	require.NoError(t, err)
	users := newFakeUserRepo(&models.User{ID: 5, Name: "Rinku Rajguru", PortfolioImages: portfolioOf(t, existing)})
	return NewPortfolioService(users, nil, store), users
}

func jpeg() *FileUpload {
	return &FileUpload{Filename: "still.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}
}

func assertBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Equal(t, message, appErr.Message)
}

func TestPortfolioService_AddImage(t *testing.T) {
	svc, users := newPortfolioFixture(t, 2)

	img, images, err := svc.AddImage(context.Background(), nil, 5, jpeg())
	require.NoError(t, err)

	assert.Equal(t, 3, img.Index)
	assert.Contains(t, img.Key, "portfolio/")
	assert.Len(t, images, 3)
	assert.Equal(t, images, users.users[5].PortfolioURLs())
}

func TestPortfolioService_AddImageWhenFull(t *testing.T) {
	svc, users := newPortfolioFixture(t, models.MaxPortfolioImages)
	before := users.users[5].PortfolioURLs()

	_, _, err := svc.AddImage(context.Background(), nil, 5, jpeg())

	assertBadRequest(t, err, "Maximum 6 portfolio images allowed. You already have 6 images.")
	assert.Equal(t, before, users.users[5].PortfolioURLs())
}

func TestPortfolioService_AddImagesLimits(t *testing.T) {
	ctx := context.Background()
	svc, users := newPortfolioFixture(t, 4)

	_, _, err := svc.AddImages(ctx, nil, 5, nil)
	assert.ErrorIs(t, err, errNoFiles)

	seven := []*FileUpload{jpeg(), jpeg(), jpeg(), jpeg(), jpeg(), jpeg(), jpeg()}
	_, _, err = svc.AddImages(ctx, nil, 5, seven)
	assert.ErrorIs(t, err, errTooManyImages)

	_, _, err = svc.AddImages(ctx, nil, 5, []*FileUpload{jpeg(), jpeg(), jpeg()})
	assertBadRequest(t, err, "Cannot upload 3 images. You already have 4 images. Maximum 6 images allowed.")
	assert.Len(t, users.users[5].PortfolioURLs(), 4)

	uploaded, images, err := svc.AddImages(ctx, nil, 5, []*FileUpload{jpeg(), jpeg()})
	require.NoError(t, err)
	require.Len(t, uploaded, 2)
	assert.Equal(t, 5, uploaded[0].Index)
	assert.Equal(t, 6, uploaded[1].Index)
	assert.Len(t, images, models.MaxPortfolioImages)
}

func TestPortfolioService_IndexOutOfRange(t *testing.T) {
	ctx := context.Background()
	svc, users := newPortfolioFixture(t, 2)

	_, _, err := svc.ReplaceImage(ctx, nil, 5, 4, jpeg())
	assertBadRequest(t, err, "Index 4 is out of range. You have 2 images.")

	_, err = svc.DeleteImage(nil, 5, 3)
	assertBadRequest(t, err, "Index 3 is out of range. You have 2 images.")

	_, err = svc.DeleteImage(nil, 5, 7)
	assert.ErrorIs(t, err, errImageIndexRange)

	images, err := svc.DeleteImage(nil, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.cine.in/portfolio/old-2.jpg"}, images)
	assert.Equal(t, images, users.users[5].PortfolioURLs())
}

func TestPortfolioService_UnknownUser(t *testing.T) {
	svc, _ := newPortfolioFixture(t, 0)

	_, err := svc.Images(nil, 404)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
