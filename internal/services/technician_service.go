package services

import (
	"errors"
	"strings"

	"cinemarathi_backend/internal/auth"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultTechnicianLimit = 10

var (
	errTechnicianNotFound  = apperrors.NewNotFoundError("technician", "Technician not found")
	errTechnicianForbidden = apperrors.NewForbiddenError("Unauthorized")
)

type TechnicianList struct {
	Technicians []repositories.TechnicianRow `json:"technicians"`
	Total       int64                        `json:"total"`
	Page        int                          `json:"page"`
	Limit       int                          `json:"limit"`
}

type TechnicianService interface {
	List(db *gorm.DB, filter repositories.TechnicianFilter) (*TechnicianList, error)
	Get(db *gorm.DB, id int64) (*repositories.TechnicianDetail, error)
	// Update is allowed for the technician themself or an admin.
	Update(db *gorm.DB, callerID int64, callerRole string, id int64, req *dto.UpdateTechnicianRequest) error
}

type technicianService struct {
	technicianRepo repositories.TechnicianRepository
}

func NewTechnicianService(technicianRepo repositories.TechnicianRepository) TechnicianService {
	return &technicianService{technicianRepo: technicianRepo}
}

func (s *technicianService) List(db *gorm.DB, filter repositories.TechnicianFilter) (*TechnicianList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultTechnicianLimit
	}
	filter.Specialization = strings.TrimSpace(filter.Specialization)
	filter.Location = strings.TrimSpace(filter.Location)

	rows, total, err := s.technicianRepo.List(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rows == nil {
		rows = []repositories.TechnicianRow{}
	}
	return &TechnicianList{Technicians: rows, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *technicianService) Get(db *gorm.DB, id int64) (*repositories.TechnicianDetail, error) {
	tech, err := s.technicianRepo.FindByUserID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTechnicianNotFound) {
			return nil, errTechnicianNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return tech, nil
}

// Update writes all editable columns. Omitted fields are cleared.
func (s *technicianService) Update(db *gorm.DB, callerID int64, callerRole string, id int64, req *dto.UpdateTechnicianRequest) error {
	if callerID != id && callerRole != auth.RoleAdmin {
		return errTechnicianForbidden
	}

	fields := map[string]interface{}{
		"specialization":   req.Specialization,
		"experience_years": req.ExperienceYears,
		"hourly_rate":      req.HourlyRate,
		"availability":     req.Availability,
		"portfolio_link":   req.PortfolioLink,
		"certifications":   req.Certifications,
	}
	if err := s.technicianRepo.Upsert(db, id, fields); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
