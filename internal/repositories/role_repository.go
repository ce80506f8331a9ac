package repositories

import (
	"errors"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrRoleNotFound = errors.New("role not found")

type RoleRepository interface {
	List(db *gorm.DB, filter RoleFilter) ([]models.RoleWithUsage, error)
	FindByID(db *gorm.DB, id int64) (*models.Role, error)
	FindWithUsage(db *gorm.DB, id int64) (*models.RoleWithUsage, error)
	SlugTaken(db *gorm.DB, slug string, excludeID int64) (bool, error)
	Create(db *gorm.DB, role *models.Role) error
	UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) error
	Delete(db *gorm.DB, id int64) error
	CountUsers(db *gorm.DB, roleID int64) (int64, error)
	ListUsers(db *gorm.DB, roleID int64, page, limit int) ([]models.RoleMember, error)
	AssignToUser(db *gorm.DB, userID, roleID int64) error
	AssignToUsers(db *gorm.DB, userIDs []int64, roleID int64) (int64, error)
}

type RoleRepositoryImpl struct{}

type RoleFilter struct {
	IsActive *bool
	Search   string
}

func NewRoleRepository() RoleRepository {
	return &RoleRepositoryImpl{}
}

const roleUsageSelect = "roles.*, (SELECT COUNT(*) FROM users WHERE users.role_id = roles.id) AS user_count"

func (r *RoleRepositoryImpl) List(db *gorm.DB, filter RoleFilter) ([]models.RoleWithUsage, error) {
	q := db.Table("roles").Select(roleUsageSelect)
	if filter.IsActive != nil {
		q = q.Where("roles.is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		s := likePattern(filter.Search)
		q = q.Where("(roles.name LIKE ? OR roles.slug LIKE ? OR roles.description LIKE ?)", s, s, s)
	}

	var rows []models.RoleWithUsage
	err := q.Order("roles.is_system DESC, roles.name ASC").Scan(&rows).Error
	return rows, err
}

func (r *RoleRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.Role, error) {
	var role models.Role
	if err := db.First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

func (r *RoleRepositoryImpl) FindWithUsage(db *gorm.DB, id int64) (*models.RoleWithUsage, error) {
	var rows []models.RoleWithUsage
	err := db.Table("roles").Select(roleUsageSelect).Where("roles.id = ?", id).Limit(1).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrRoleNotFound
	}
	return &rows[0], nil
}

func (r *RoleRepositoryImpl) SlugTaken(db *gorm.DB, slug string, excludeID int64) (bool, error) {
	var n int64
	q := db.Model(&models.Role{}).Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *RoleRepositoryImpl) Create(db *gorm.DB, role *models.Role) error {
	return db.Create(role).Error
}

func (r *RoleRepositoryImpl) UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) error {
	return db.Model(&models.Role{}).Where("id = ?", id).Updates(fields).Error
}

func (r *RoleRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	return db.Delete(&models.Role{}, id).Error
}

func (r *RoleRepositoryImpl) CountUsers(db *gorm.DB, roleID int64) (int64, error) {
	var n int64
	err := db.Model(&models.User{}).Where("role_id = ?", roleID).Count(&n).Error
	return n, err
}

func (r *RoleRepositoryImpl) ListUsers(db *gorm.DB, roleID int64, page, limit int) ([]models.RoleMember, error) {
	var rows []models.RoleMember
	err := db.Model(&models.User{}).
		Select("id, name, email, contact, user_type, role_id, is_verified, created_at").
		Where("role_id = ?", roleID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset(page, limit)).
		Scan(&rows).Error
	return rows, err
}

func (r *RoleRepositoryImpl) AssignToUser(db *gorm.DB, userID, roleID int64) error {
	return db.Model(&models.User{}).Where("id = ?", userID).Update("role_id", roleID).Error
}

func (r *RoleRepositoryImpl) AssignToUsers(db *gorm.DB, userIDs []int64, roleID int64) (int64, error) {
	res := db.Model(&models.User{}).Where("id IN ?", userIDs).Update("role_id", roleID)
	return res.RowsAffected, res.Error
}
