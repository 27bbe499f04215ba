package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite3 "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/itops/support-analyzer/internal/core/domain"
	apperrors "github.com/itops/support-analyzer/internal/core/errors"
	"github.com/itops/support-analyzer/internal/core/ports"
	"github.com/itops/support-analyzer/migrations"
)

// TicketRepository is the secondary adapter for ticket persistence backed by
// a single local SQLite file.
type TicketRepository struct {
	db *sql.DB
}

// Ensure TicketRepository implements the ports.TicketRepository interface.
var _ ports.TicketRepository = (*TicketRepository)(nil)

// Open opens (or creates) the database file at path.
func Open(path string) (*TicketRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_loc=UTC")
	if err != nil {
		return nil, apperrors.NewStorageError("sqlite.Open", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("sqlite.Open", err)
	}
	return &TicketRepository{db: db}, nil
}

// Close releases the database handle.
func (r *TicketRepository) Close() error {
	return r.db.Close()
}

// CreateSchema applies the embedded migrations. Idempotent: running against
// an already-migrated database is not an error.
func (r *TicketRepository) CreateSchema(ctx context.Context) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return apperrors.NewStorageError("sqlite.CreateSchema", err)
	}

	driver, err := migratesqlite3.WithInstance(r.db, &migratesqlite3.Config{})
	if err != nil {
		return apperrors.NewStorageError("sqlite.CreateSchema", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return apperrors.NewStorageError("sqlite.CreateSchema", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.NewStorageError("sqlite.CreateSchema", err)
	}
	return nil
}

// InsertTickets inserts rows in one transaction, skipping any ticket_id that
// already exists. Returns the number of rows actually inserted.
func (r *TicketRepository) InsertTickets(ctx context.Context, tickets []*domain.Ticket) (int, error) {
	for _, t := range tickets {
		if err := t.Validate(); err != nil {
			return 0, fmt.Errorf("ticket %s: %w", t.TicketID, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewStorageError("sqlite.InsertTickets", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT OR IGNORE INTO tickets
  (ticket_id, created_at, resolved_at, category, priority, status,
   channel, assigned_agent, resolution_hours, customer_satisfaction, description)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, apperrors.NewStorageError("sqlite.InsertTickets", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, t := range tickets {
		res, err := stmt.ExecContext(ctx,
			t.TicketID,
			t.CreatedAt,
			t.ResolvedAt,
			t.Category,
			string(t.Priority),
			string(t.Status),
			t.Channel,
			t.AssignedAgent,
			t.ResolutionHours,
			t.CustomerSatisfaction,
			t.Description,
		)
		if err != nil {
			return 0, apperrors.NewStorageError("sqlite.InsertTickets", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, apperrors.NewStorageError("sqlite.InsertTickets", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewStorageError("sqlite.InsertTickets", err)
	}
	return inserted, nil
}

// ListAll returns every stored ticket in insertion order.
func (r *TicketRepository) ListAll(ctx context.Context) ([]*domain.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT ticket_id, created_at, resolved_at, category, priority, status,
       channel, assigned_agent, resolution_hours, customer_satisfaction, description
FROM tickets
ORDER BY id`)
	if err != nil {
		return nil, apperrors.NewStorageError("sqlite.ListAll", err)
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("sqlite.ListAll", err)
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("sqlite.ListAll", err)
	}
	return tickets, nil
}

// scanTicket maps one row back into the domain entity, turning NULLs into
// absent optional fields.
func scanTicket(rows *sql.Rows) (*domain.Ticket, error) {
	var (
		t            domain.Ticket
		priority     string
		status       string
		resolvedAt   sql.NullTime
		hours        sql.NullFloat64
		satisfaction sql.NullInt64
		description  sql.NullString
		createdAt    time.Time
	)
	if err := rows.Scan(
		&t.TicketID,
		&createdAt,
		&resolvedAt,
		&t.Category,
		&priority,
		&status,
		&t.Channel,
		&t.AssignedAgent,
		&hours,
		&satisfaction,
		&description,
	); err != nil {
		return nil, err
	}

	t.CreatedAt = createdAt
	t.Priority = domain.TicketPriority(priority)
	t.Status = domain.TicketStatus(status)
	t.Description = description.String
	if resolvedAt.Valid {
		value := resolvedAt.Time
		t.ResolvedAt = &value
	}
	if hours.Valid {
		value := hours.Float64
		t.ResolutionHours = &value
	}
	if satisfaction.Valid {
		value := int(satisfaction.Int64)
		t.CustomerSatisfaction = &value
	}
	return &t, nil
}
