package models

import "time"

type DeleteRequestStatus string

const (
	DeleteRequestPending   DeleteRequestStatus = "pending"
	DeleteRequestApproved  DeleteRequestStatus = "approved"
	DeleteRequestRejected  DeleteRequestStatus = "rejected"
	DeleteRequestCompleted DeleteRequestStatus = "completed"
)

type DeleteAccountRequest struct {
	ID          int64               `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64               `gorm:"index;not null" json:"user_id"`
	Email       string              `gorm:"size:255;not null" json:"email"`
	Reason      string              `gorm:"type:text;not null" json:"reason"`
	Status      DeleteRequestStatus `gorm:"size:20;default:pending;index" json:"status"`
	RequestedAt time.Time           `gorm:"autoCreateTime;index" json:"requested_at"`
	ProcessedAt *time.Time          `json:"processed_at"`
	ProcessedBy *int64              `json:"processed_by"`
}

func (DeleteAccountRequest) TableName() string { return "delete_account_requests" }
