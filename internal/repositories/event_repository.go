package repositories

import (
	"errors"

	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound          = errors.New("event not found")
	ErrAlreadyRegisteredEvent = errors.New("already registered for this event")
)

type EventRepository interface {
	ListUpcoming(db *gorm.DB, filter EventFilter) ([]models.Event, int64, error)
	FindWithCount(db *gorm.DB, id int64) (*models.EventWithCount, error)
	Exists(db *gorm.DB, id int64) (bool, error)
	Register(db *gorm.DB, eventID, userID int64) (*models.EventRegistration, error)
	Unregister(db *gorm.DB, eventID, userID int64) error
}

type EventRepositoryImpl struct{}

type EventFilter struct {
	Location string
	Type     string
	Page     int
	Limit    int
}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) ListUpcoming(db *gorm.DB, filter EventFilter) ([]models.Event, int64, error) {
	q := db.Model(&models.Event{}).Where("event_date >= CURDATE() AND is_active = ?", true)
	if filter.Location != "" {
		q = q.Where("location LIKE ?", likePattern(filter.Location))
	}
	if filter.Type != "" {
		q = q.Where("event_type = ?", filter.Type)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	err := q.Order("event_date ASC").
		Limit(filter.Limit).
		Offset(offset(filter.Page, filter.Limit)).
		Find(&events).Error
	return events, total, err
}

func (r *EventRepositoryImpl) FindWithCount(db *gorm.DB, id int64) (*models.EventWithCount, error) {
	var rows []models.EventWithCount
	err := db.Table("events e").
		Select("e.*, COUNT(er.id) AS registered_count").
		Joins("LEFT JOIN event_registrations er ON e.id = er.event_id").
		Where("e.id = ?", id).
		Group("e.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEventNotFound
	}
	return &rows[0], nil
}

func (r *EventRepositoryImpl) Exists(db *gorm.DB, id int64) (bool, error) {
	var n int64
	err := db.Model(&models.Event{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *EventRepositoryImpl) Register(db *gorm.DB, eventID, userID int64) (*models.EventRegistration, error) {
	var n int64
	if err := db.Model(&models.EventRegistration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrAlreadyRegisteredEvent
	}

	reg := &models.EventRegistration{EventID: eventID, UserID: userID}
	if err := db.Create(reg).Error; err != nil {
		return nil, err
	}
	return reg, nil
}

func (r *EventRepositoryImpl) Unregister(db *gorm.DB, eventID, userID int64) error {
	return db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventRegistration{}).Error
}
