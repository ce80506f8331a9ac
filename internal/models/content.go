package models

import "time"

// News is a row of news_feed.
type News struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	ImageURL  *string   `gorm:"size:1000" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (News) TableName() string { return "news_feed" }

type FeaturedProfile struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"index;not null" json:"user_id"`
	FeaturedDate time.Time `gorm:"type:date" json:"featured_date"`
}

func (FeaturedProfile) TableName() string { return "featured_profiles" }

type FeaturedProfileListing struct {
	FeaturedProfile
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Event struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	EventType   *string   `gorm:"size:50;index" json:"event_type"`
	Location    *string   `gorm:"size:255" json:"location"`
	EventDate   time.Time `gorm:"index" json:"event_date"`
	ImageURL    *string   `gorm:"size:1000" json:"image_url"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Event) TableName() string { return "events" }

type EventWithCount struct {
	Event
	RegisteredCount int64 `json:"registered_count"`
}

type EventRegistration struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	EventID      int64     `gorm:"uniqueIndex:idx_event_user;not null" json:"event_id"`
	UserID       int64     `gorm:"uniqueIndex:idx_event_user;not null" json:"user_id"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

func (EventRegistration) TableName() string { return "event_registrations" }
