package services

import (
	"testing"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEventRepo struct {
	repositories.EventRepository
	events     map[int64]bool
	registered map[[2]int64]bool
	filter     repositories.EventFilter
}

func (r *fakeEventRepo) ListUpcoming(_ *gorm.DB, filter repositories.EventFilter) ([]models.Event, int64, error) {
	r.filter = filter
	return nil, 0, nil
}

func (r *fakeEventRepo) Exists(_ *gorm.DB, id int64) (bool, error) {
	return r.events[id], nil
}

func (r *fakeEventRepo) Register(_ *gorm.DB, eventID, userID int64) (*models.EventRegistration, error) {
	key := [2]int64{eventID, userID}
	if r.registered[key] {
		return nil, repositories.ErrAlreadyRegisteredEvent
	}
	r.registered[key] = true
	return &models.EventRegistration{ID: int64(len(r.registered)), EventID: eventID, UserID: userID}, nil
}

func (r *fakeEventRepo) Unregister(_ *gorm.DB, eventID, userID int64) error {
	delete(r.registered, [2]int64{eventID, userID})
	return nil
}

type fakeTechnicianRepo struct {
	repositories.TechnicianRepository
	upserts map[int64]map[string]interface{}
}

func (r *fakeTechnicianRepo) Upsert(_ *gorm.DB, userID int64, fields map[string]interface{}) error {
	r.upserts[userID] = fields
	return nil
}

func TestEventService_Upcoming(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := NewEventService(repo)

	list, err := svc.Upcoming(nil, repositories.EventFilter{Page: 0, Limit: 0, Location: "  Pune "})
	require.NoError(t, err)

	assert.Equal(t, 1, list.Page)
	assert.Equal(t, defaultEventLimit, list.Limit)
	assert.NotNil(t, list.Events)
	assert.Equal(t, "Pune", repo.filter.Location)
}

func TestEventService_Register(t *testing.T) {
	repo := &fakeEventRepo{events: map[int64]bool{5: true}, registered: map[[2]int64]bool{}}
	svc := NewEventService(repo)

	_, err := svc.Register(nil, 99, 1)
	assert.ErrorIs(t, err, errEventNotFound)

	reg, err := svc.Register(nil, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reg.EventID)

	_, err = svc.Register(nil, 5, 1)
	assert.ErrorIs(t, err, errAlreadyRegistered)

	require.NoError(t, svc.Unregister(nil, 5, 1))
	_, err = svc.Register(nil, 5, 1)
	assert.NoError(t, err)
}

func TestTechnicianService_Update(t *testing.T) {
	repo := &fakeTechnicianRepo{upserts: map[int64]map[string]interface{}{}}
	svc := NewTechnicianService(repo)
	craft := "Cinematographer"

	err := svc.Update(nil, 2, auth.RoleTechnician, 3, &dto.UpdateTechnicianRequest{Specialization: &craft})
	assert.ErrorIs(t, err, errTechnicianForbidden)
	assert.Empty(t, repo.upserts)

	require.NoError(t, svc.Update(nil, 3, auth.RoleTechnician, 3, &dto.UpdateTechnicianRequest{Specialization: &craft}))
	fields := repo.upserts[3]
	assert.Equal(t, &craft, fields["specialization"])
	assert.Contains(t, fields, "hourly_rate")

	require.NoError(t, svc.Update(nil, 1, auth.RoleAdmin, 4, &dto.UpdateTechnicianRequest{}))
	assert.Contains(t, repo.upserts, int64(4))
}
