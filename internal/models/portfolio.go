package models

import "time"

// PortfolioItem is a legacy portfolio row. New uploads go to users.portfolio_images.
type PortfolioItem struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64      `gorm:"index;not null" json:"user_id"`
	Title       *string    `gorm:"size:255" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	MediaURL    *string    `gorm:"size:1000" json:"media_url"`
	MediaType   *string    `gorm:"size:20" json:"media_type"`
	WorkDate    *time.Time `gorm:"type:date" json:"work_date"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (PortfolioItem) TableName() string { return "portfolio_items" }
