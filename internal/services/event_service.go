package services

import (
	"errors"
	"strings"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const defaultEventLimit = 10

var (
	errEventNotFound     = apperrors.NewNotFoundError("event", "Event not found")
	errAlreadyRegistered = apperrors.NewConflictError("event", "Already registered for this event")
)

type EventList struct {
	Events []models.Event `json:"events"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

type EventService interface {
	Upcoming(db *gorm.DB, filter repositories.EventFilter) (*EventList, error)
	Get(db *gorm.DB, id int64) (*models.EventWithCount, error)
	Register(db *gorm.DB, eventID, userID int64) (*models.EventRegistration, error)
	Unregister(db *gorm.DB, eventID, userID int64) error
}

type eventService struct {
	eventRepo repositories.EventRepository
}

func NewEventService(eventRepo repositories.EventRepository) EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) Upcoming(db *gorm.DB, filter repositories.EventFilter) (*EventList, error) {
	filter.Page, filter.Limit = pageAndLimit(filter.Page, filter.Limit, defaultEventLimit)
	filter.Location = strings.TrimSpace(filter.Location)
	filter.Type = strings.TrimSpace(filter.Type)

	events, total, err := s.eventRepo.ListUpcoming(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if events == nil {
		events = []models.Event{}
	}
	return &EventList{Events: events, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *eventService) Get(db *gorm.DB, id int64) (*models.EventWithCount, error) {
	event, err := s.eventRepo.FindWithCount(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, errEventNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

func (s *eventService) Register(db *gorm.DB, eventID, userID int64) (*models.EventRegistration, error) {
	exists, err := s.eventRepo.Exists(db, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !exists {
		return nil, errEventNotFound
	}

	reg, err := s.eventRepo.Register(db, eventID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrAlreadyRegisteredEvent) {
			return nil, errAlreadyRegistered
		}
		return nil, apperrors.InternalError(err)
	}
	return reg, nil
}

func (s *eventService) Unregister(db *gorm.DB, eventID, userID int64) error {
	if err := s.eventRepo.Unregister(db, eventID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
