package services

import (
	"net/http"
	"testing"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRoleRepo struct {
	repositories.RoleRepository
	roles    map[int64]*models.Role
	users    map[int64]int64
	assigned map[int64]int64
	updated  map[string]interface{}
	deleted  []int64
}

func newFakeRoleRepo(roles ...*models.Role) *fakeRoleRepo {
	r := &fakeRoleRepo{roles: map[int64]*models.Role{}, users: map[int64]int64{}, assigned: map[int64]int64{}}
	for _, role := range roles {
		r.roles[role.ID] = role
	}
	return r
}

func (r *fakeRoleRepo) FindByID(_ *gorm.DB, id int64) (*models.Role, error) {
	if role, ok := r.roles[id]; ok {
		copied := *role
		return &copied, nil
	}
	return nil, repositories.ErrRoleNotFound
}

func (r *fakeRoleRepo) FindWithUsage(db *gorm.DB, id int64) (*models.RoleWithUsage, error) {
	role, err := r.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	return &models.RoleWithUsage{Role: *role, UserCount: r.users[id]}, nil
}

func (r *fakeRoleRepo) SlugTaken(_ *gorm.DB, slug string, excludeID int64) (bool, error) {
	for id, role := range r.roles {
		if role.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRoleRepo) Create(_ *gorm.DB, role *models.Role) error {
	role.ID = int64(len(r.roles) + 1)
	r.roles[role.ID] = role
	return nil
}

func (r *fakeRoleRepo) UpdateFields(_ *gorm.DB, _ int64, fields map[string]interface{}) error {
	r.updated = fields
	return nil
}

func (r *fakeRoleRepo) CountUsers(_ *gorm.DB, roleID int64) (int64, error) {
	return r.users[roleID], nil
}

func (r *fakeRoleRepo) Delete(_ *gorm.DB, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeRoleRepo) AssignToUser(_ *gorm.DB, userID, roleID int64) error {
	r.assigned[userID] = roleID
	return nil
}

func (r *fakeRoleRepo) AssignToUsers(_ *gorm.DB, userIDs []int64, roleID int64) (int64, error) {
	for _, id := range userIDs {
		r.assigned[id] = roleID
	}
	return int64(len(userIDs)), nil
}

func newRoleFixture() (RoleService, *fakeRoleRepo) {
	roles := newFakeRoleRepo(
		&models.Role{ID: 1, Name: "Admin", Slug: "admin", IsActive: true, IsSystem: true},
		&models.Role{ID: 2, Name: "Editor", Slug: "editor", IsActive: true},
		&models.Role{ID: 3, Name: "Archived", Slug: "archived", IsActive: false},
	)
	users := newFakeUserRepo(&models.User{ID: 10}, &models.User{ID: 11})
	return NewRoleService(roles, users), roles
}

func TestRoleService_CreateSlugRules(t *testing.T) {
	svc, roles := newRoleFixture()

	_, err := svc.Create(nil, &dto.CreateRoleRequest{Name: "Casting Lead", Slug: "Casting-Lead"})
	assert.ErrorIs(t, err, errRoleSlugFormat)

	_, err = svc.Create(nil, &dto.CreateRoleRequest{Name: "Casting Lead", Slug: "casting lead"})
	assert.ErrorIs(t, err, errRoleSlugFormat)

	_, err = svc.Create(nil, &dto.CreateRoleRequest{Name: "Editor 2", Slug: "editor"})
	assert.ErrorIs(t, err, errRoleSlugTaken)

	role, err := svc.Create(nil, &dto.CreateRoleRequest{Name: " Casting Lead ", Slug: " casting_lead-2 "})
	require.NoError(t, err)
	assert.Equal(t, "casting_lead-2", role.Slug)
	assert.Equal(t, "Casting Lead", role.Name)
	assert.True(t, role.IsActive)
	assert.Contains(t, roles.roles, role.ID)
}

func TestRoleService_UpdateSlugRules(t *testing.T) {
	svc, roles := newRoleFixture()

	upper := "EDITOR"
	_, err := svc.Update(nil, 2, &dto.UpdateRoleRequest{Slug: &upper})
	assert.ErrorIs(t, err, errRoleSlugFormat)
	assert.Nil(t, roles.updated)

	taken := "archived"
	_, err = svc.Update(nil, 2, &dto.UpdateRoleRequest{Slug: &taken})
	assert.ErrorIs(t, err, errRoleSlugTaken)

	same := "editor"
	_, err = svc.Update(nil, 2, &dto.UpdateRoleRequest{Slug: &same})
	require.NoError(t, err)
	assert.Equal(t, "editor", roles.updated["slug"])

	_, err = svc.Update(nil, 2, &dto.UpdateRoleRequest{})
	assert.ErrorIs(t, err, apperrors.ErrNoFieldsToUpdate)
}

func TestRoleService_SystemRolesAreProtected(t *testing.T) {
	svc, roles := newRoleFixture()

	name := "Super Admin"
	_, err := svc.Update(nil, 1, &dto.UpdateRoleRequest{Name: &name})
	assert.ErrorIs(t, err, errSystemRoleRename)

	off := false
	_, err = svc.Update(nil, 1, &dto.UpdateRoleRequest{IsActive: &off})
	assert.ErrorIs(t, err, errSystemRoleDeactivate)

	desc := "Full access"
	_, err = svc.Update(nil, 1, &dto.UpdateRoleRequest{Description: &desc})
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(nil, 1), errSystemRoleDelete)
	assert.Empty(t, roles.deleted)
}

func TestRoleService_DeleteWithAssignedUsers(t *testing.T) {
	svc, roles := newRoleFixture()
	roles.users[2] = 3

	err := svc.Delete(nil, 2)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Equal(t, "Cannot delete role. 3 user(s) are currently assigned this role. Please reassign them first.", appErr.Message)
	assert.Equal(t, map[string]interface{}{"user_count": int64(3)}, appErr.Details)
	assert.Empty(t, roles.deleted)

	roles.users[2] = 0
	require.NoError(t, svc.Delete(nil, 2))
	assert.Equal(t, []int64{2}, roles.deleted)

	assert.ErrorIs(t, svc.Delete(nil, 42), errRoleNotFound)
}

func TestRoleService_Assign(t *testing.T) {
	svc, roles := newRoleFixture()

	assert.ErrorIs(t, svc.Assign(nil, &dto.AssignRoleRequest{UserID: 10}), errAssignFieldsRequired)
	assert.ErrorIs(t, svc.Assign(nil, &dto.AssignRoleRequest{UserID: 99, RoleID: 2}), apperrors.ErrUserNotFound)
	assert.ErrorIs(t, svc.Assign(nil, &dto.AssignRoleRequest{UserID: 10, RoleID: 3}), errInactiveRole)
	assert.ErrorIs(t, svc.Assign(nil, &dto.AssignRoleRequest{UserID: 10, RoleID: 42}), errRoleNotFound)

	require.NoError(t, svc.Assign(nil, &dto.AssignRoleRequest{UserID: 10, RoleID: 2}))
	assert.Equal(t, int64(2), roles.assigned[10])

	_, err := svc.BulkAssign(nil, &dto.BulkAssignRoleRequest{UserIDs: []int64{10, 11}, RoleID: 3})
	assert.ErrorIs(t, err, errInactiveRole)

	n, err := svc.BulkAssign(nil, &dto.BulkAssignRoleRequest{UserIDs: []int64{10, 11}, RoleID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
