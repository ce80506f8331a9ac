package services

import (
	"context"
	"testing"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newCastingFixture() (*castingService, *fakeCastingRepo, *fakeApplicationRepo, *fakeNotificationService) {
	calls := &fakeCastingRepo{calls: map[int64]*models.CastingCall{
		10: {ID: 10, ProductionHouseID: 3, ProjectTitle: "Sairat 2", Role: "Lead"},
	}}
	apps := newFakeApplicationRepo()
	notes := &fakeNotificationService{}
	svc := NewCastingService(calls, apps, notes).(*castingService)
	return svc, calls, apps, notes
}

func TestCastingService_CreateCall(t *testing.T) {
	svc, calls, _, _ := newCastingFixture()

	_, err := svc.CreateCall(nil, 3, &dto.CreateCastingCallRequest{ProjectTitle: "  "})
	assert.ErrorIs(t, err, errCastingFieldsRequired)

	_, err = svc.CreateCall(nil, 3, &dto.CreateCastingCallRequest{
		ProjectTitle: "Natsamrat", Role: "Son", AuditionDate: strPtr("next week"),
	})
	assert.ErrorIs(t, err, errInvalidAuditionDateFmt)

	call, err := svc.CreateCall(nil, 3, &dto.CreateCastingCallRequest{
		ProjectTitle: " Natsamrat ", Role: "Son", AuditionDate: strPtr("2026-01-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Natsamrat", call.ProjectTitle)
	assert.Equal(t, int64(3), call.ProductionHouseID)
	require.NotNil(t, call.AuditionDate)
	assert.Equal(t, "2026-01-15", call.AuditionDate.Format(dateLayout))
	assert.Len(t, calls.created, 1)
}

func TestCastingService_Apply(t *testing.T) {
	svc, _, apps, _ := newCastingFixture()

	_, err := svc.Apply(nil, 7, &dto.ApplyRequest{})
	assert.ErrorIs(t, err, errCastingCallIDRequired)

	_, err = svc.Apply(nil, 7, &dto.ApplyRequest{CastingCallID: 404})
	assert.ErrorIs(t, err, errCastingCallNotFound)

	app, err := svc.Apply(nil, 7, &dto.ApplyRequest{CastingCallID: 10, AuditionLink: strPtr("https://youtu.be/x")})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationApplied, app.Status)
	assert.Len(t, apps.apps, 1)

	_, err = svc.Apply(nil, 7, &dto.ApplyRequest{CastingCallID: 10})
	assert.ErrorIs(t, err, errAlreadyApplied)
}

func TestCastingService_UpdateApplicationStatus(t *testing.T) {
	svc, _, apps, notes := newCastingFixture()
	app, err := svc.Apply(nil, 7, &dto.ApplyRequest{CastingCallID: 10})
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t, svc.UpdateApplicationStatus(ctx, nil, 3, app.ID, "hired"), errInvalidStatus)
	assert.ErrorIs(t, svc.UpdateApplicationStatus(ctx, nil, 3, 999, "selected"), errApplicationNotFound)
	assert.ErrorIs(t, svc.UpdateApplicationStatus(ctx, nil, 4, app.ID, "selected"), apperrors.ErrNotAuthorized)
	assert.Empty(t, notes.sent)

	require.NoError(t, svc.UpdateApplicationStatus(ctx, nil, 3, app.ID, "shortlisted"))
	assert.Equal(t, models.ApplicationShortlisted, apps.apps[app.ID].Status)
	require.Len(t, notes.sent, 1)
	assert.Equal(t, `Your application for "Sairat 2" is now shortlisted`, notes.sent[0])
}
