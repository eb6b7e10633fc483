package notifications

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"google.golang.org/api/option"

	"github.com/crimewatch/crimewatch-api/internal/pkg/logger"
)

// FCMSender sends push notifications through Firebase Cloud Messaging.
// Each user is addressed by a per-account topic ("user-<id>") that the
// client subscribes to after login, so no device token storage is needed
// server side.
type FCMSender struct {
	client *messaging.Client
}

// NewFCMSender initializes Firebase from a service account file
func NewFCMSender(ctx context.Context, serviceAccountPath string) (*FCMSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		return nil, err
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	return &FCMSender{client: client}, nil
}

// SendToUsers delivers a push to each user's topic. Failures are logged and
// never propagated; push is best effort.
func (s *FCMSender) SendToUsers(ctx context.Context, userIDs []primitive.ObjectID, title, body string) {
	for _, id := range userIDs {
		msg := &messaging.Message{
			Topic: "user-" + id.Hex(),
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
		}

		if _, err := s.client.Send(ctx, msg); err != nil {
			logger.Warn("fcm push to user %s failed: %v", id.Hex(), err)
		}
	}
}
