package notify

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMChannel delivers push notifications via Firebase Cloud Messaging.
// The recipient string is a device registration token.
type FCMChannel struct {
	client  *messaging.Client
	timeout time.Duration
}

// NewFCMChannel initializes the Firebase Admin SDK and returns a push channel.
func NewFCMChannel(serviceAccountPath string, timeout time.Duration) (*FCMChannel, error) {
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting firebase messaging client: %w", err)
	}

	return &FCMChannel{client: client, timeout: timeout}, nil
}

func (f *FCMChannel) Send(ctx context.Context, recipient, body string) Result {
	sendCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	id, err := f.client.Send(sendCtx, &messaging.Message{
		Token: recipient,
		Notification: &messaging.Notification{
			Title: "SOS Alert",
			Body:  body,
		},
	})
	if err != nil {
		return Result{Success: false, Err: err.Error()}
	}
	return Result{Success: true, ProviderID: id}
}
