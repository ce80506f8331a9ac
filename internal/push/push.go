package push

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by every send when no Firebase credentials are configured.
var ErrNotInitialized = errors.New("Firebase Admin not initialized. Please configure FIREBASE_SERVICE_ACCOUNT_KEY or FIREBASE_SERVICE_ACCOUNT_PATH")

// Notification is the payload shared by every send path.
type Notification struct {
	Title    string
	Body     string
	ImageURL string
	Data     map[string]string
}

type SendResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}

type BatchResult struct {
	SuccessCount int          `json:"successCount"`
	FailureCount int          `json:"failureCount"`
	Responses    []SendResult `json:"responses"`
}

type TopicError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type TopicResult struct {
	SuccessCount int          `json:"successCount"`
	FailureCount int          `json:"failureCount"`
	Errors       []TopicError `json:"errors"`
}

// Messenger sends push notifications to devices and topics.
type Messenger interface {
	Enabled() bool
	SendToToken(ctx context.Context, token string, n Notification) (string, error)
	SendToTokens(ctx context.Context, tokens []string, n Notification) (*BatchResult, error)
	SendToTopic(ctx context.Context, topic string, n Notification) (string, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*TopicResult, error)
	UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*TopicResult, error)
}

// StringifyData converts an arbitrary JSON object into FCM's string map.
func StringifyData(data map[string]any) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		switch val := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = val
		case float64:
			if val == float64(int64(val)) {
				out[k] = fmt.Sprintf("%d", int64(val))
			} else {
				out[k] = fmt.Sprintf("%v", val)
			}
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

// Disabled is the Messenger used when Firebase is not configured.
type Disabled struct{}

func (Disabled) Enabled() bool { return false }

func (Disabled) SendToToken(context.Context, string, Notification) (string, error) {
	return "", ErrNotInitialized
}

func (Disabled) SendToTokens(context.Context, []string, Notification) (*BatchResult, error) {
	return nil, ErrNotInitialized
}

func (Disabled) SendToTopic(context.Context, string, Notification) (string, error) {
	return "", ErrNotInitialized
}

func (Disabled) SubscribeToTopic(context.Context, []string, string) (*TopicResult, error) {
	return nil, ErrNotInitialized
}

func (Disabled) UnsubscribeFromTopic(context.Context, []string, string) (*TopicResult, error) {
	return nil, ErrNotInitialized
}
