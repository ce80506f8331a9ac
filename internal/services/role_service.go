package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/internal/validator"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const defaultRoleUsersLimit = 20

var (
	errRoleNotFound         = apperrors.NewNotFoundError("role", "Role not found")
	errRoleFieldsRequired   = apperrors.NewBadRequestError("Name and slug are required")
	errRoleSlugFormat       = apperrors.NewBadRequestError("Slug must contain only lowercase letters, numbers, hyphens, and underscores")
	errRoleSlugTaken        = apperrors.NewConflictError("role", "Role with this slug already exists")
	errRolePermissions      = apperrors.NewBadRequestError("Permissions must be a valid JSON array")
	errSystemRoleRename     = apperrors.NewForbiddenError("Cannot modify name or slug of system roles")
	errSystemRoleDeactivate = apperrors.NewForbiddenError("Cannot deactivate system roles")
	errSystemRoleDelete     = apperrors.NewForbiddenError("Cannot delete system roles")
	errAssignFieldsRequired = apperrors.NewBadRequestError("user_id and role_id are required")
	errInactiveRole         = apperrors.NewBadRequestError("Cannot assign inactive role")
	errBulkUsersRequired    = apperrors.NewBadRequestError("user_ids must be a non-empty array")
	errRoleIDRequired       = apperrors.NewBadRequestError("role_id is required")
)

type RoleService interface {
	List(db *gorm.DB, filter repositories.RoleFilter) ([]models.RoleWithUsage, error)
	Get(db *gorm.DB, id int64) (*models.RoleWithUsage, error)
	Create(db *gorm.DB, req *dto.CreateRoleRequest) (*models.Role, error)
	Update(db *gorm.DB, id int64, req *dto.UpdateRoleRequest) (*models.RoleWithUsage, error)
	Delete(db *gorm.DB, id int64) error
	Users(db *gorm.DB, id int64, page, limit int) ([]models.RoleMember, dto.Pagination, error)
	Assign(db *gorm.DB, req *dto.AssignRoleRequest) error
	BulkAssign(db *gorm.DB, req *dto.BulkAssignRoleRequest) (int64, error)
}

type roleService struct {
	roleRepo repositories.RoleRepository
	userRepo repositories.UserRepository
}

func NewRoleService(roleRepo repositories.RoleRepository, userRepo repositories.UserRepository) RoleService {
	return &roleService{roleRepo: roleRepo, userRepo: userRepo}
}

func (s *roleService) List(db *gorm.DB, filter repositories.RoleFilter) ([]models.RoleWithUsage, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	roles, err := s.roleRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if roles == nil {
		roles = []models.RoleWithUsage{}
	}
	for i := range roles {
		normalizePermissions(&roles[i].Role)
	}
	return roles, nil
}

func (s *roleService) Get(db *gorm.DB, id int64) (*models.RoleWithUsage, error) {
	role, err := s.roleRepo.FindWithUsage(db, id)
	if err != nil {
		return nil, handleRoleError(err)
	}
	normalizePermissions(&role.Role)
	return role, nil
}

func (s *roleService) Create(db *gorm.DB, req *dto.CreateRoleRequest) (*models.Role, error) {
	if blank(req.Name) || blank(req.Slug) {
		return nil, errRoleFieldsRequired
	}
	slug, err := normalizeRoleSlug(req.Slug)
	if err != nil {
		return nil, err
	}

	taken, err := s.roleRepo.SlugTaken(db, slug, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if taken {
		return nil, errRoleSlugTaken
	}

	perms, err := ParsePermissions(req.Permissions)
	if err != nil {
		return nil, err
	}

	role := &models.Role{
		Name:        strings.TrimSpace(req.Name),
		Slug:        slug,
		Description: req.Description,
		Permissions: perms,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := s.roleRepo.Create(db, role); err != nil {
		return nil, apperrors.InternalError(err)
	}
	normalizePermissions(role)
	return role, nil
}

func (s *roleService) Update(db *gorm.DB, id int64, req *dto.UpdateRoleRequest) (*models.RoleWithUsage, error) {
	role, err := s.roleRepo.FindByID(db, id)
	if err != nil {
		return nil, handleRoleError(err)
	}
	if role.IsSystem && (req.Name != nil || req.Slug != nil) {
		return nil, errSystemRoleRename
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		if blank(*req.Name) {
			return nil, errRoleFieldsRequired
		}
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		slug, err := normalizeRoleSlug(*req.Slug)
		if err != nil {
			return nil, err
		}
		taken, err := s.roleRepo.SlugTaken(db, slug, id)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if taken {
			return nil, errRoleSlugTaken
		}
		fields["slug"] = slug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(req.Permissions) > 0 {
		perms, err := ParsePermissions(req.Permissions)
		if err != nil {
			return nil, err
		}
		fields["permissions"] = perms
	}
	if req.IsActive != nil {
		if role.IsSystem && !*req.IsActive {
			return nil, errSystemRoleDeactivate
		}
		fields["is_active"] = *req.IsActive
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNoFieldsToUpdate
	}

	if err := s.roleRepo.UpdateFields(db, id, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.Get(db, id)
}

func (s *roleService) Delete(db *gorm.DB, id int64) error {
	role, err := s.roleRepo.FindByID(db, id)
	if err != nil {
		return handleRoleError(err)
	}
	if role.IsSystem {
		return errSystemRoleDelete
	}

	count, err := s.roleRepo.CountUsers(db, id)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if count > 0 {
		msg := fmt.Sprintf("Cannot delete role. %d user(s) are currently assigned this role. Please reassign them first.", count)
		return apperrors.NewBadRequestError(msg).WithDetails(map[string]interface{}{"user_count": count})
	}

	if err := s.roleRepo.Delete(db, id); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *roleService) Users(db *gorm.DB, id int64, page, limit int) ([]models.RoleMember, dto.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultRoleUsersLimit
	}
	if _, err := s.roleRepo.FindByID(db, id); err != nil {
		return nil, dto.Pagination{}, handleRoleError(err)
	}

	total, err := s.roleRepo.CountUsers(db, id)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}
	users, err := s.roleRepo.ListUsers(db, id, page, limit)
	if err != nil {
		return nil, dto.Pagination{}, apperrors.InternalError(err)
	}
	if users == nil {
		users = []models.RoleMember{}
	}
	return users, dto.NewPagination(page, limit, total), nil
}

func (s *roleService) Assign(db *gorm.DB, req *dto.AssignRoleRequest) error {
	if req.UserID == 0 || req.RoleID == 0 {
		return errAssignFieldsRequired
	}

	exists, err := s.userRepo.Exists(db, req.UserID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !exists {
		return apperrors.ErrUserNotFound
	}
	if err := s.requireActiveRole(db, req.RoleID); err != nil {
		return err
	}

	if err := s.roleRepo.AssignToUser(db, req.UserID, req.RoleID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *roleService) BulkAssign(db *gorm.DB, req *dto.BulkAssignRoleRequest) (int64, error) {
	if len(req.UserIDs) == 0 {
		return 0, errBulkUsersRequired
	}
	if req.RoleID == 0 {
		return 0, errRoleIDRequired
	}
	if err := s.requireActiveRole(db, req.RoleID); err != nil {
		return 0, err
	}

	affected, err := s.roleRepo.AssignToUsers(db, req.UserIDs, req.RoleID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return affected, nil
}

func (s *roleService) requireActiveRole(db *gorm.DB, id int64) error {
	role, err := s.roleRepo.FindByID(db, id)
	if err != nil {
		return handleRoleError(err)
	}
	if !role.IsActive {
		return errInactiveRole
	}
	return nil
}

// ParsePermissions accepts a JSON array, or a string holding one. Absent or
// null permissions are stored as NULL.
func ParsePermissions(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, errRolePermissions
		}
		trimmed = strings.TrimSpace(inner)
	}

	var list []interface{}
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, errRolePermissions
	}
	return datatypes.JSON(trimmed), nil
}

// normalizeRoleSlug checks the slug as sent; uppercase is rejected, not folded.
func normalizeRoleSlug(raw string) (string, error) {
	slug := strings.TrimSpace(raw)
	if !validator.IsValidRoleSlug(slug) {
		return "", errRoleSlugFormat
	}
	return slug, nil
}

func normalizePermissions(role *models.Role) {
	if len(role.Permissions) == 0 || string(role.Permissions) == "null" {
		role.Permissions = datatypes.JSON("[]")
	}
}

func handleRoleError(err error) error {
	if errors.Is(err, repositories.ErrRoleNotFound) {
		return errRoleNotFound
	}
	return apperrors.InternalError(err)
}
