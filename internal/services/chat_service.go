package services

import (
	"strings"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const chatMessageFrame = "chat_message"

var errChatFieldsRequired = apperrors.NewBadRequestError("receiver_id and message are required")

// Broadcaster delivers realtime frames to a user's open connections.
type Broadcaster interface {
	SendToUser(userID int64, kind string, data any)
}

type ChatService interface {
	Send(db *gorm.DB, senderID int64, req *dto.SendMessageRequest) (*models.ChatMessage, error)
	History(db *gorm.DB, userID, otherUserID int64) ([]models.ChatMessage, error)
	Conversations(db *gorm.DB, userID int64) ([]models.Conversation, error)
	MarkRead(db *gorm.DB, userID, senderID int64) error
}

type chatService struct {
	chatRepo    repositories.ChatRepository
	broadcaster Broadcaster
}

// NewChatService accepts a nil broadcaster when realtime delivery is off.
func NewChatService(chatRepo repositories.ChatRepository, broadcaster Broadcaster) ChatService {
	return &chatService{chatRepo: chatRepo, broadcaster: broadcaster}
}

func (s *chatService) Send(db *gorm.DB, senderID int64, req *dto.SendMessageRequest) (*models.ChatMessage, error) {
	if req.ReceiverID == 0 || blank(req.Message) {
		return nil, errChatFieldsRequired
	}

	msg := &models.ChatMessage{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Message:    strings.TrimSpace(req.Message),
	}
	if err := s.chatRepo.CreateMessage(db, msg); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if s.broadcaster != nil {
		s.broadcaster.SendToUser(msg.ReceiverID, chatMessageFrame, msg)
	}
	return msg, nil
}

func (s *chatService) History(db *gorm.DB, userID, otherUserID int64) ([]models.ChatMessage, error) {
	msgs, err := s.chatRepo.History(db, userID, otherUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return msgs, nil
}

func (s *chatService) Conversations(db *gorm.DB, userID int64) ([]models.Conversation, error) {
	convs, err := s.chatRepo.Conversations(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	return convs, nil
}

// MarkRead marks everything senderID sent to userID as read.
func (s *chatService) MarkRead(db *gorm.DB, userID, senderID int64) error {
	if err := s.chatRepo.MarkRead(db, senderID, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
