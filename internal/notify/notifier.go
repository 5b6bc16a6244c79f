package notify

import (
	"context"

	"github.com/localnerve/securepulse/internal/models"
	"go.uber.org/zap"
)

// Message is a rendered notification. Email sinks prefer HTML, SMS uses Text.
type Message struct {
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text"`
	HTML    string `json:"-"`
}

// Notifier sends a message to one recipient address or phone number.
type Notifier interface {
	Channel() models.Channel
	Send(ctx context.Context, to string, msg Message) error
}

// LogNotifier writes messages to the log instead of delivering them.
// It stands in for email or SMS when no provider is configured.
type LogNotifier struct {
	Logger *zap.Logger
	For    models.Channel
}

func (n *LogNotifier) Channel() models.Channel {
	return models.ChannelLog
}

func (n *LogNotifier) Send(_ context.Context, to string, msg Message) error {
	n.Logger.Info("Notification (not delivered)",
		zap.String("intended_channel", string(n.For)),
		zap.String("to", to),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return nil
}
