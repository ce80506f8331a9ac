package repositories

import (
	"cinemarathi_backend/internal/models"

	"gorm.io/gorm"
)

type ChatRepository interface {
	CreateMessage(db *gorm.DB, msg *models.ChatMessage) error
	History(db *gorm.DB, userID, otherUserID int64) ([]models.ChatMessage, error)
	Conversations(db *gorm.DB, userID int64) ([]models.Conversation, error)
	MarkRead(db *gorm.DB, senderID, receiverID int64) error
}

type ChatRepositoryImpl struct{}

func NewChatRepository() ChatRepository {
	return &ChatRepositoryImpl{}
}

func (r *ChatRepositoryImpl) CreateMessage(db *gorm.DB, msg *models.ChatMessage) error {
	return db.Create(msg).Error
}

func (r *ChatRepositoryImpl) History(db *gorm.DB, userID, otherUserID int64) ([]models.ChatMessage, error) {
	var msgs []models.ChatMessage
	err := db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("sent_at ASC").
		Find(&msgs).Error
	return msgs, err
}

// Conversations lists each chat partner with the time of the latest message
// exchanged in either direction.
func (r *ChatRepositoryImpl) Conversations(db *gorm.DB, userID int64) ([]models.Conversation, error) {
	var rows []models.Conversation
	err := db.Raw(`
		SELECT c.other_user_id, u.name, u.email, c.last_message_time
		FROM (
			SELECT CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END AS other_user_id,
			       MAX(sent_at) AS last_message_time
			FROM chat_messages
			WHERE sender_id = ? OR receiver_id = ?
			GROUP BY other_user_id
		) c
		JOIN users u ON u.id = c.other_user_id
		ORDER BY c.last_message_time DESC`,
		userID, userID, userID,
	).Scan(&rows).Error
	return rows, err
}

func (r *ChatRepositoryImpl) MarkRead(db *gorm.DB, senderID, receiverID int64) error {
	return db.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Update("is_read", true).Error
}
