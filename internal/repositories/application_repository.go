package repositories

import (
	"errors"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationNotFound = errors.New("application not found")

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	Exists(db *gorm.DB, castingCallID, applicantID int64) (bool, error)
	FindByID(db *gorm.DB, id int64) (*models.Application, error)
	UpdateStatus(db *gorm.DB, id int64, status models.ApplicationStatus) error
	ListByApplicant(db *gorm.DB, applicantID int64) ([]models.MyApplication, error)
	ListByCastingCall(db *gorm.DB, castingCallID int64) ([]models.ApplicantApplication, error)
	Count(db *gorm.DB) (int64, error)
	MostActiveApplicants(db *gorm.DB, limit int) ([]ActiveApplicantRow, error)
}

type ApplicationRepositoryImpl struct{}

type ActiveApplicantRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Applications int64  `json:"applications"`
}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, app *models.Application) error {
	return db.Create(app).Error
}

func (r *ApplicationRepositoryImpl) Exists(db *gorm.DB, castingCallID, applicantID int64) (bool, error) {
	var n int64
	err := db.Model(&models.Application{}).
		Where("casting_call_id = ? AND applicant_id = ?", castingCallID, applicantID).
		Count(&n).Error
	return n > 0, err
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id int64) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) UpdateStatus(db *gorm.DB, id int64, status models.ApplicationStatus) error {
	return db.Model(&models.Application{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ApplicationRepositoryImpl) ListByApplicant(db *gorm.DB, applicantID int64) ([]models.MyApplication, error) {
	var rows []models.MyApplication
	err := db.Table("applications a").
		Select("a.*, cc.project_title, cc.role, u.name AS production_house").
		Joins("JOIN casting_calls cc ON a.casting_call_id = cc.id").
		Joins("JOIN users u ON cc.production_house_id = u.id").
		Where("a.applicant_id = ?", applicantID).
		Order("a.applied_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ApplicationRepositoryImpl) ListByCastingCall(db *gorm.DB, castingCallID int64) ([]models.ApplicantApplication, error) {
	var rows []models.ApplicantApplication
	err := db.Table("applications a").
		Select("a.*, u.name AS applicant_name, u.email AS applicant_email").
		Joins("JOIN users u ON a.applicant_id = u.id").
		Where("a.casting_call_id = ?", castingCallID).
		Scan(&rows).Error
	return rows, err
}

func (r *ApplicationRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	return countOrZero(db.Model(&models.Application{}))
}

func (r *ApplicationRepositoryImpl) MostActiveApplicants(db *gorm.DB, limit int) ([]ActiveApplicantRow, error) {
	var rows []ActiveApplicantRow
	err := db.Table("users u").
		Select("u.id, u.name, u.user_type AS role, COUNT(DISTINCT a.id) AS applications").
		Joins("LEFT JOIN applications a ON u.id = a.applicant_id").
		Group("u.id").
		Order("applications DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
