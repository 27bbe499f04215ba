package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
)

// ChatSink simulates a Slack-style channel webhook.
type ChatSink struct {
	channel string
	limiter *rate.Limiter
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.NotificationSink = (*ChatSink)(nil)

// NewChatSink creates a chat sink posting to channel.
func NewChatSink(channel string, ratePerSec float64, burst int, logger *slog.Logger) *ChatSink {
	return &ChatSink{
		channel: channel,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:  logger.With("component", "chat_sink"),
		now:     time.Now,
	}
}

// Send accepts an opaque record; a "channel" key overrides the default
// channel for that delivery.
func (s *ChatSink) Send(ctx context.Context, record ports.NotificationRecord) (*domain.Acknowledgement, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	channel := s.channel
	if override := record["channel"]; override != "" {
		channel = override
	}
	s.logger.Info("simulated chat delivery", "channel", channel, "message", record["message"])

	return &domain.Acknowledgement{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Action:    domain.ActionChatNotification,
		Target:    channel,
		Status:    "sent",
		Message:   record["message"],
	}, nil
}
