package models

import "time"

// Rating is a row of ratings_reviews.
type Rating struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReviewerID     int64     `gorm:"index;not null" json:"reviewer_id"`
	ReviewedUserID int64     `gorm:"index;not null" json:"reviewed_user_id"`
	Rating         int       `gorm:"not null" json:"rating"`
	Review         *string   `gorm:"type:text" json:"review"`
	CreatedAt      time.Time `json:"created_at"`
}

func (Rating) TableName() string { return "ratings_reviews" }

type RatingWithReviewer struct {
	Rating
	ReviewerName string `json:"reviewer_name"`
}

type ChatMessage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int64     `gorm:"index;not null" json:"sender_id"`
	ReceiverID int64     `gorm:"index;not null" json:"receiver_id"`
	Message    string    `gorm:"type:text" json:"message"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	SentAt     time.Time `gorm:"autoCreateTime" json:"sent_at"`
}

func (ChatMessage) TableName() string { return "chat_messages" }

type Conversation struct {
	OtherUserID     int64     `json:"other_user_id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	LastMessageTime time.Time `json:"last_message_time"`
}
