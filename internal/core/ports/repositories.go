package ports

import (
	"context"

	"github.com/itops/support-analyzer/internal/core/domain"
)

// TicketRepository is the port for durable ticket storage.
type TicketRepository interface {
	// CreateSchema creates the ticket and rollup tables if absent.
	// Idempotent: safe to call repeatedly against the same database.
	CreateSchema(ctx context.Context) error

	// InsertTickets inserts rows in a single transaction, skipping any whose
	// ticket_id already exists. Returns the number actually inserted.
	InsertTickets(ctx context.Context, tickets []*domain.Ticket) (int, error)

	// ListAll returns every stored ticket row.
	ListAll(ctx context.Context) ([]*domain.Ticket, error)
}
