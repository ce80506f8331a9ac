package push

import (
	"context"
	"fmt"

	"cinemarathi_backend/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type Config struct {
	ServiceAccountKey  string // raw JSON
	ServiceAccountPath string
}

// FirebaseMessenger delivers notifications through Firebase Cloud Messaging.
type FirebaseMessenger struct {
	client *messaging.Client
}

// New returns a Firebase-backed Messenger, or Disabled when credentials are
// missing or the SDK fails to initialise.
func New(ctx context.Context, cfg Config) Messenger {
	var opt option.ClientOption
	switch {
	case cfg.ServiceAccountKey != "":
		opt = option.WithCredentialsJSON([]byte(cfg.ServiceAccountKey))
	case cfg.ServiceAccountPath != "":
		opt = option.WithCredentialsFile(cfg.ServiceAccountPath)
	default:
		logger.Warn("Firebase Admin not initialized: missing service account configuration")
		return Disabled{}
	}

	m, err := NewFirebaseMessenger(ctx, opt)
	if err != nil {
		logger.Error("Error initializing Firebase Admin", "error", err)
		return Disabled{}
	}
	logger.Info("Firebase messaging initialized")
	return m
}

func NewFirebaseMessenger(ctx context.Context, opts ...option.ClientOption) (*FirebaseMessenger, error) {
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase messaging: %w", err)
	}
	return &FirebaseMessenger{client: client}, nil
}

func (f *FirebaseMessenger) Enabled() bool { return true }

func (f *FirebaseMessenger) SendToToken(ctx context.Context, token string, n Notification) (string, error) {
	msg := buildMessage(n)
	msg.Token = token
	return f.client.Send(ctx, msg)
}

func (f *FirebaseMessenger) SendToTopic(ctx context.Context, topic string, n Notification) (string, error) {
	msg := buildMessage(n)
	msg.Topic = topic
	return f.client.Send(ctx, msg)
}

func (f *FirebaseMessenger) SendToTokens(ctx context.Context, tokens []string, n Notification) (*BatchResult, error) {
	msg := buildMessage(n)
	resp, err := f.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens:       tokens,
		Data:         msg.Data,
		Notification: msg.Notification,
		Android:      msg.Android,
		APNS:         msg.APNS,
	})
	if err != nil {
		return nil, err
	}

	result := &BatchResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Responses:    make([]SendResult, 0, len(resp.Responses)),
	}
	for _, r := range resp.Responses {
		sr := SendResult{Success: r.Success, MessageID: r.MessageID}
		if r.Error != nil {
			sr.Error = r.Error.Error()
		}
		result.Responses = append(result.Responses, sr)
	}
	return result, nil
}

func (f *FirebaseMessenger) SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*TopicResult, error) {
	resp, err := f.client.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return nil, err
	}
	return topicResult(resp), nil
}

func (f *FirebaseMessenger) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*TopicResult, error) {
	resp, err := f.client.UnsubscribeFromTopic(ctx, tokens, topic)
	if err != nil {
		return nil, err
	}
	return topicResult(resp), nil
}

func topicResult(resp *messaging.TopicManagementResponse) *TopicResult {
	out := &TopicResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
		Errors:       make([]TopicError, 0, len(resp.Errors)),
	}
	for _, e := range resp.Errors {
		out.Errors = append(out.Errors, TopicError{Index: e.Index, Reason: e.Reason})
	}
	return out
}

// buildMessage applies the platform defaults: high priority on Android,
// default sound everywhere and a badge of 1 on iOS.
func buildMessage(n Notification) *messaging.Message {
	badge := 1
	data := n.Data
	if data == nil {
		data = map[string]string{}
	}

	return &messaging.Message{
		Notification: &messaging.Notification{
			Title:    n.Title,
			Body:     n.Body,
			ImageURL: n.ImageURL,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "default",
				ImageURL:  n.ImageURL,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	}
}
