package repositories

import (
	"errors"
	"time"

	"cinemarathi_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id int64) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindAdminByEmail(db *gorm.DB, email string) (*models.User, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	Exists(db *gorm.DB, id int64) (bool, error)
	UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) error
	UpdatePassword(db *gorm.DB, id int64, hash string) error
	SetVerified(db *gorm.DB, id int64, verified bool) error
	SetFCMToken(db *gorm.DB, id int64, token *string) error
	SetProfileImage(db *gorm.DB, id int64, url string) error
	SetPortfolioImages(db *gorm.DB, id int64, images datatypes.JSON) error
	Delete(db *gorm.DB, id int64) error

	// Admin listings
	List(db *gorm.DB, userType string) ([]AdminUserRow, error)
	Recent(db *gorm.DB, limit int) ([]RecentUserRow, error)
	ListAdmins(db *gorm.DB) ([]models.User, error)
	Count(db *gorm.DB) (int64, error)
}

type UserRepositoryImpl struct{}

// AdminUserRow is a user as listed on the admin dashboard.
type AdminUserRow struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone"`
	Role       string    `json:"role"`
	Gender     *string   `json:"gender"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecentUserRow struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	exists, err := r.EmailExists(db, user.Email)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserAlreadyExists
	}
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindAdminByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ? AND user_type = ?", email, models.UserTypeAdmin).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var n int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepositoryImpl) Exists(db *gorm.DB, id int64) (bool, error) {
	var n int64
	if err := db.Model(&models.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepositoryImpl) UpdateFields(db *gorm.DB, id int64, fields map[string]interface{}) error {
	return db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, id int64, hash string) error {
	return db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *UserRepositoryImpl) SetVerified(db *gorm.DB, id int64, verified bool) error {
	return db.Model(&models.User{}).Where("id = ?", id).Update("is_verified", verified).Error
}

func (r *UserRepositoryImpl) SetFCMToken(db *gorm.DB, id int64, token *string) error {
	return db.Model(&models.User{}).Where("id = ?", id).Update("fcm_token", token).Error
}

func (r *UserRepositoryImpl) SetProfileImage(db *gorm.DB, id int64, url string) error {
	return db.Model(&models.User{}).Where("id = ?", id).Update("profile_image_url", url).Error
}

func (r *UserRepositoryImpl) SetPortfolioImages(db *gorm.DB, id int64, images datatypes.JSON) error {
	return db.Model(&models.User{}).Where("id = ?", id).Update("portfolio_images", images).Error
}

func (r *UserRepositoryImpl) Delete(db *gorm.DB, id int64) error {
	return db.Delete(&models.User{}, id).Error
}

func (r *UserRepositoryImpl) List(db *gorm.DB, userType string) ([]AdminUserRow, error) {
	var rows []AdminUserRow
	q := db.Model(&models.User{}).
		Select("id, name, email, contact AS phone, user_type AS role, gender, is_verified, created_at")
	if userType != "" {
		q = q.Where("user_type = ?", userType)
	}
	err := q.Order("created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *UserRepositoryImpl) Recent(db *gorm.DB, limit int) ([]RecentUserRow, error) {
	var rows []RecentUserRow
	err := db.Model(&models.User{}).
		Select("id, name, email, user_type AS role, created_at").
		Order("created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *UserRepositoryImpl) ListAdmins(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Where("user_type = ?", models.UserTypeAdmin).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var n int64
	err := db.Model(&models.User{}).Count(&n).Error
	return n, err
}
