package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"devnotify/database"
	"devnotify/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// MessagingClient is the subset of the FCM client used here.
type MessagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// TokenSource looks up a user's FCM device token.
type TokenSource interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// FCMPublisher pushes to the device registered by the user, if any.
type FCMPublisher struct {
	client MessagingClient
	tokens TokenSource
	logger *zap.Logger
	title  string
}

// NewFCMClient initializes the Firebase app and its messaging client.
func NewFCMClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}
	return client, nil
}

func NewFCMPublisher(client MessagingClient, tokens TokenSource, logger *zap.Logger) *FCMPublisher {
	return &FCMPublisher{client: client, tokens: tokens, logger: logger, title: "DevNotify"}
}

func (p *FCMPublisher) Publish(ctx context.Context, userID, event string, payload any) error {
	u, err := p.tokens.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("fcm: look up user %s: %w", userID, err)
	}
	if u.FCMToken == "" {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("fcm: marshal payload: %w", err)
	}

	msg := &messaging.Message{
		Token: u.FCMToken,
		Notification: &messaging.Notification{
			Title: p.title,
			Body:  pushBody(payload),
		},
		Data: map[string]string{
			"event":   event,
			"payload": string(raw),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: p.title,
				Body:  pushBody(payload),
				Icon:  "/favicon.ico",
			},
		},
	}

	if _, err := p.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("fcm: send to user %s: %w", userID, err)
	}
	p.logger.Debug("fcm message sent", zap.String("userId", userID), zap.String("event", event))
	return nil
}

func pushBody(payload any) string {
	switch v := payload.(type) {
	case models.Notification:
		return v.Message
	case *models.Notification:
		return v.Message
	case string:
		return v
	}
	return ""
}
