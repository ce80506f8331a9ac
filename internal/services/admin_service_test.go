package services

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminFixture(plans map[int64]*models.PremiumPlan) (*adminService, *fakeSubscriptionRepo, *fakeTx, time.Time) {
	if plans == nil {
		plans = map[int64]*models.PremiumPlan{}
	}
	subs := &fakeSubscriptionRepo{plans: plans}
	tx := &fakeTx{}
	now := time.Date(2026, 5, 10, 9, 30, 0, 0, time.UTC)
	svc := &adminService{
		userRepo:         newFakeUserRepo(&models.User{ID: 4, Name: "Sai"}),
		subscriptionRepo: subs,
		now:              func() time.Time { return now },
		inTx:             tx.run,
	}
	return svc, subs, tx, now
}

func TestAdminService_AssignPremiumYearly(t *testing.T) {
	days := 365
	svc, subs, tx, now := newAdminFixture(map[int64]*models.PremiumPlan{
		3: {ID: 3, Name: "Yearly Premium", DurationDays: &days},
	})

	sub, err := svc.AssignPremium(nil, 4, &dto.AssignPremiumRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), sub.PlanID)
	assert.True(t, sub.IsActive)
	assert.Equal(t, now, sub.StartDate)
	require.NotNil(t, sub.EndDate)
	assert.Equal(t, now.AddDate(0, 0, 365), *sub.EndDate)
	assert.Empty(t, subs.newPlans)
	assert.Equal(t, 1, tx.runs)
	assert.NoError(t, tx.failed)
}

func TestAdminService_AssignPremiumLifetimeCreatesPlan(t *testing.T) {
	days := 30
	svc, subs, _, _ := newAdminFixture(map[int64]*models.PremiumPlan{
		1: {ID: 1, Name: "Monthly", DurationDays: &days},
	})

	sub, err := svc.AssignPremium(nil, 4, &dto.AssignPremiumRequest{IsLifetime: true})
	require.NoError(t, err)

	assert.Nil(t, sub.EndDate)
	require.Len(t, subs.newPlans, 1)
	assert.Equal(t, "Lifetime Premium", subs.newPlans[0].Name)
	assert.Equal(t, subs.newPlans[0].ID, sub.PlanID)
	require.Len(t, subs.created, 1)
}

func TestAdminService_AssignPremiumExplicitPlan(t *testing.T) {
	days := 90
	svc, _, _, now := newAdminFixture(map[int64]*models.PremiumPlan{
		8: {ID: 8, Name: "Quarterly", DurationDays: &days},
	})
	missing := int64(77)
	_, err := svc.AssignPremium(nil, 4, &dto.AssignPremiumRequest{PlanID: &missing})
	assert.ErrorIs(t, err, errPlanNotFound)

	planID := int64(8)
	sub, err := svc.AssignPremium(nil, 4, &dto.AssignPremiumRequest{PlanID: &planID})
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, 90), *sub.EndDate)
}

func TestAdminService_AssignPremiumUnknownUser(t *testing.T) {
	svc, subs, tx, _ := newAdminFixture(nil)

	_, err := svc.AssignPremium(nil, 99, &dto.AssignPremiumRequest{})

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.ErrorIs(t, tx.failed, apperrors.ErrUserNotFound)
	assert.Empty(t, subs.created)
	assert.Empty(t, subs.newPlans)
}

func TestAdminService_AssignPremiumInsertFailureRollsBack(t *testing.T) {
	svc, subs, tx, _ := newAdminFixture(nil)
	subs.createErr = errors.New("deadlock found")
	tx.undo = append(tx.undo, func() { subs.newPlans = nil })

	_, err := svc.AssignPremium(nil, 4, &dto.AssignPremiumRequest{IsLifetime: true})

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
	require.Error(t, tx.failed)
	assert.Empty(t, subs.newPlans)
	assert.Empty(t, subs.created)
}

func TestAdminService_RemovePremium(t *testing.T) {
	svc, subs, _, _ := newAdminFixture(nil)

	assert.ErrorIs(t, svc.RemovePremium(nil, 4), errNoPremiumToRemove)

	subs.deactivated = 1
	assert.NoError(t, svc.RemovePremium(nil, 4))
}

func TestAdminService_UpdateSubscriptionValidation(t *testing.T) {
	svc, _, _, _ := newAdminFixture(nil)

	err := svc.UpdateSubscription(nil, 1, &dto.UpdateSubscriptionRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)

	bad := "10/05/2026"
	err = svc.UpdateSubscription(nil, 1, &dto.UpdateSubscriptionRequest{StartDate: &bad})
	assert.ErrorIs(t, err, errInvalidDate)
}
