package notify_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops/support-analyzer/internal/adapters/secondary/notify"
	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTicketDeskSink_Send(t *testing.T) {
	sink := notify.NewTicketDeskSink(100, 10, testLogger())

	ack, err := sink.Send(context.Background(), ports.NotificationRecord{
		"ticket_id": "TICK-0042",
		"category":  "Hardware",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, ack.ID)
	assert.False(t, ack.Timestamp.IsZero())
	assert.Equal(t, domain.ActionCreateTicket, ack.Action)
	assert.Equal(t, "ticket-desk", ack.Target)
	assert.Equal(t, "success", ack.Status)
	assert.Contains(t, ack.Message, "TICK-0042")
}

func TestTicketDeskSink_CancelledContext(t *testing.T) {
	// Burst 1 with a drained token forces the limiter to wait, so the
	// cancelled context surfaces.
	sink := notify.NewTicketDeskSink(0.001, 1, testLogger())

	ctx := context.Background()
	_, err := sink.Send(ctx, ports.NotificationRecord{"ticket_id": "TICK-0001"})
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = sink.Send(cancelled, ports.NotificationRecord{"ticket_id": "TICK-0002"})
	assert.Error(t, err)
}

func TestChatSink_Send(t *testing.T) {
	sink := notify.NewChatSink("#it-support", 100, 10, testLogger())

	t.Run("posts to the default channel", func(t *testing.T) {
		ack, err := sink.Send(context.Background(), ports.NotificationRecord{"message": "servidor restablecido"})

		require.NoError(t, err)
		assert.Equal(t, domain.ActionChatNotification, ack.Action)
		assert.Equal(t, "#it-support", ack.Target)
		assert.Equal(t, "sent", ack.Status)
		assert.Equal(t, "servidor restablecido", ack.Message)
	})

	t.Run("record channel overrides the default", func(t *testing.T) {
		ack, err := sink.Send(context.Background(), ports.NotificationRecord{
			"message": "escalado a guardia",
			"channel": "#it-oncall",
		})

		require.NoError(t, err)
		assert.Equal(t, "#it-oncall", ack.Target)
	})
}
