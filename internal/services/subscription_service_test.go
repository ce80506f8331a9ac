package services

import (
	"testing"
	"time"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_Subscribe(t *testing.T) {
	days := 30
	repo := &fakeSubscriptionRepo{plans: map[int64]*models.PremiumPlan{
		1: {ID: 1, Name: "Monthly", DurationDays: &days},
		2: {ID: 2, Name: "Open ended"},
	}}
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := &subscriptionService{subscriptionRepo: repo, now: func() time.Time { return now }}

	_, _, err := svc.Subscribe(nil, 5, 0)
	assert.ErrorIs(t, err, errPlanIDRequired)

	_, _, err = svc.Subscribe(nil, 5, 9)
	assert.ErrorIs(t, err, errPlanNotFound)

	sub, plan, err := svc.Subscribe(nil, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, "Monthly", plan.Name)
	assert.True(t, sub.IsActive)
	assert.Equal(t, now.AddDate(0, 0, 30), *sub.EndDate)

	sub, _, err = svc.Subscribe(nil, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 365), *sub.EndDate)
	assert.Len(t, repo.created, 2)
}

func TestSubscriptionService_Status(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeSubscriptionRepo{}
	svc := &subscriptionService{subscriptionRepo: repo, now: func() time.Time { return now }}

	st, err := svc.Status(nil, 1)
	require.NoError(t, err)
	assert.Nil(t, st)

	past := now.Add(-time.Hour)
	repo.status = &models.SubscriptionStatus{ID: 3, SubscriptionEnd: &past, IsActive: true}
	st, err = svc.Status(nil, 1)
	require.NoError(t, err)
	assert.False(t, st.IsActiveNow)

	repo.status.SubscriptionEnd = nil
	st, err = svc.Status(nil, 1)
	require.NoError(t, err)
	assert.True(t, st.IsActiveNow)
}

func TestSubscriptionService_Cancel(t *testing.T) {
	repo := &fakeSubscriptionRepo{}
	svc := NewSubscriptionService(repo)

	assert.ErrorIs(t, svc.Cancel(nil, 1), errNoActiveSubscription)

	repo.deactivated = 1
	assert.NoError(t, svc.Cancel(nil, 1))
}

func TestRatingService_Create(t *testing.T) {
	repo := &fakeRatingRepo{}
	svc := NewRatingService(repo)

	_, err := svc.Create(nil, 1, &dto.CreateRatingRequest{Rating: 4})
	assert.ErrorIs(t, err, errReviewedUserRequired)

	for _, r := range []int{0, 6} {
		_, err = svc.Create(nil, 1, &dto.CreateRatingRequest{ReviewedUserID: 2, Rating: r})
		assert.ErrorIs(t, err, errRatingRange)
	}

	rating, err := svc.Create(nil, 1, &dto.CreateRatingRequest{ReviewedUserID: 2, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rating.ReviewerID)
	assert.Len(t, repo.created, 1)
}

func TestSummarizeRatings(t *testing.T) {
	empty := SummarizeRatings(nil)
	assert.Equal(t, 0, empty.AverageRating)
	assert.Equal(t, 0, empty.TotalReviews)
	assert.NotNil(t, empty.Ratings)

	out := SummarizeRatings([]models.RatingWithReviewer{
		{Rating: models.Rating{Rating: 5}},
		{Rating: models.Rating{Rating: 4}},
		{Rating: models.Rating{Rating: 4}},
	})
	assert.Equal(t, "4.33", out.AverageRating)
	assert.Equal(t, 3, out.TotalReviews)
}
