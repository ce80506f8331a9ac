package dto

import (
	"encoding/json"
	"errors"
	"strings"
)

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id"`
	Message    string `json:"message"`
}

type CreateRatingRequest struct {
	ReviewedUserID int64   `json:"reviewed_user_id"`
	Rating         int     `json:"rating"`
	Review         *string `json:"review"`
}

type PortfolioItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	MediaURL    *string `json:"media_url"`
	MediaType   *string `json:"media_type"`
	WorkDate    *string `json:"work_date"`
}

// --- push ---

type RegisterDeviceRequest struct {
	DeviceToken string `json:"device_token"`
}

type SendToDeviceRequest struct {
	DeviceToken string         `json:"device_token"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
	Data        map[string]any `json:"data"`
	ImageURL    string         `json:"image_url"`
}

type SendToDevicesRequest struct {
	DeviceTokens []string       `json:"device_tokens"`
	Title        string         `json:"title"`
	Body         string         `json:"body"`
	Data         map[string]any `json:"data"`
	ImageURL     string         `json:"image_url"`
}

type SendToUserRequest struct {
	UserID   int64          `json:"user_id"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Data     map[string]any `json:"data"`
	ImageURL string         `json:"image_url"`
}

type SendToTopicRequest struct {
	Topic    string         `json:"topic"`
	Title    string         `json:"title"`
	Body     string         `json:"body"`
	Data     map[string]any `json:"data"`
	ImageURL string         `json:"image_url"`
}

type TopicSubscriptionRequest struct {
	DeviceTokens TokenList `json:"device_tokens"`
	Topic        string    `json:"topic"`
}

// TokenList accepts either a single token string or an array of tokens.
type TokenList []string

func (l *TokenList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "\"") {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		if single == "" {
			*l = nil
		} else {
			*l = TokenList{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("device_tokens must be a string or an array of strings")
	}
	*l = many
	return nil
}
