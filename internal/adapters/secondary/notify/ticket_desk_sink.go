// Package notify holds the simulated external notification sinks. They are
// secondary adapters that acknowledge records without performing network
// I/O; in production each would wrap a real webhook or API client.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
)

// TicketDeskSink simulates a Zendesk-style ticket desk API. Deliveries are
// throttled the way a real API client would be.
type TicketDeskSink struct {
	limiter *rate.Limiter
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.NotificationSink = (*TicketDeskSink)(nil)

// NewTicketDeskSink creates a ticket desk sink allowing ratePerSec deliveries
// with the given burst.
func NewTicketDeskSink(ratePerSec float64, burst int, logger *slog.Logger) *TicketDeskSink {
	return &TicketDeskSink{
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		logger:  logger.With("component", "ticket_desk_sink"),
		now:     time.Now,
	}
}

// Send accepts an opaque record and returns a success acknowledgement.
func (s *TicketDeskSink) Send(ctx context.Context, record ports.NotificationRecord) (*domain.Acknowledgement, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ticketID := record["ticket_id"]
	s.logger.Info("simulated ticket desk delivery", "ticket_id", ticketID)

	return &domain.Acknowledgement{
		ID:        uuid.NewString(),
		Timestamp: s.now().UTC(),
		Action:    domain.ActionCreateTicket,
		Target:    "ticket-desk",
		Status:    "success",
		Message:   fmt.Sprintf("ticket %s created in ticket desk", ticketID),
	}, nil
}
