package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itops/support-analyzer/internal/core/domain"
	apperrors "github.com/itops/support-analyzer/internal/core/errors"
	"github.com/itops/support-analyzer/internal/core/ports"
)

// Automation simulates the ticket-routing and process automation around the
// analyzer. Sinks are stand-ins: they acknowledge records without external
// I/O. Every operation appends to an in-memory audit log that can be
// exported as JSON.
//
// The struct is not safe for concurrent use; the pipeline is a
// single-caller batch job.
type Automation struct {
	ticketDesk ports.NotificationSink
	chat       ports.NotificationSink
	logger     *slog.Logger
	now        func() time.Time
	entries    []domain.AutomationEntry
}

var _ ports.AutomationService = (*Automation)(nil)

// NewAutomation creates the automation service over the two simulated sinks.
func NewAutomation(ticketDesk, chat ports.NotificationSink, logger *slog.Logger) *Automation {
	return &Automation{
		ticketDesk: ticketDesk,
		chat:       chat,
		logger:     logger.With("component", "automation"),
		now:        time.Now,
	}
}

// NotifyTicketCreated pushes a new-ticket record to the ticket-desk sink.
func (a *Automation) NotifyTicketCreated(ctx context.Context, ticket *domain.Ticket) (*domain.AutomationEntry, error) {
	record := ports.NotificationRecord{
		"ticket_id": ticket.TicketID,
		"category":  ticket.Category,
		"priority":  string(ticket.Priority),
	}
	ack, err := a.ticketDesk.Send(ctx, record)
	if err != nil {
		return nil, err
	}

	entry := a.append(domain.AutomationEntry{
		Action:   domain.ActionCreateTicket,
		TicketID: ticket.TicketID,
		Status:   ack.Status,
		Detail:   map[string]string{"target": ack.Target, "message": ack.Message},
	})
	a.logger.Info("ticket creation pushed to ticket desk", "ticket_id", ticket.TicketID)
	return entry, nil
}

// NotifyChat pushes a message to the chat sink.
func (a *Automation) NotifyChat(ctx context.Context, message string) (*domain.AutomationEntry, error) {
	ack, err := a.chat.Send(ctx, ports.NotificationRecord{"message": message})
	if err != nil {
		return nil, err
	}

	entry := a.append(domain.AutomationEntry{
		Action: domain.ActionChatNotification,
		Status: ack.Status,
		Detail: map[string]string{"channel": ack.Target, "message": message},
	})
	a.logger.Info("chat notification sent", "channel", ack.Target)
	return entry, nil
}

// AutoAssign routes a ticket to an agent by category and priority:
// hardware/network work goes to Agent1, software/email to Agent2, critical
// tickets to the urgency specialist Agent3, everything else to Agent4.
func (a *Automation) AutoAssign(ctx context.Context, ticket *domain.Ticket) (*domain.AutomationEntry, error) {
	category := strings.ToLower(ticket.Category)
	priority := strings.ToLower(string(ticket.Priority))

	var agent string
	switch {
	case strings.Contains(category, "hardware"), strings.Contains(category, "network"):
		agent = "Agent1"
	case strings.Contains(category, "software"), strings.Contains(category, "email"):
		agent = "Agent2"
	case priority == "critical":
		agent = "Agent3"
	default:
		agent = "Agent4"
	}
	ticket.AssignedAgent = agent

	entry := a.append(domain.AutomationEntry{
		Action:   domain.ActionAutoAssign,
		TicketID: ticket.TicketID,
		Status:   "assigned",
		Detail: map[string]string{
			"assigned_to": agent,
			"reason":      fmt.Sprintf("auto-assigned by category: %s", category),
		},
	})
	a.logger.Info("ticket auto-assigned", "ticket_id", ticket.TicketID, "agent", agent)
	return entry, nil
}

// EscalateStale scans for open tickets older than the threshold and records
// the escalation.
func (a *Automation) EscalateStale(ctx context.Context, tickets []*domain.Ticket, params ports.EscalationParams) (*domain.AutomationEntry, error) {
	now := params.Now
	if now.IsZero() {
		now = a.now().UTC()
	}

	var stale []string
	for _, t := range tickets {
		if t.IsResolved() {
			continue
		}
		if now.Sub(t.CreatedAt) > params.Threshold {
			stale = append(stale, t.TicketID)
		}
	}

	entry := a.append(domain.AutomationEntry{
		Action: domain.ActionEscalateTickets,
		Status: "escalated",
		Detail: map[string]string{
			"threshold":     params.Threshold.String(),
			"tickets_found": strconv.Itoa(len(stale)),
			"ticket_ids":    strings.Join(stale, ","),
		},
	})
	a.logger.Info("stale tickets escalated", "found", len(stale), "threshold", params.Threshold)
	return entry, nil
}

// WeeklyReport records the scheduled weekly report and announces it on chat.
func (a *Automation) WeeklyReport(ctx context.Context) (*domain.AutomationEntry, error) {
	if _, err := a.chat.Send(ctx, ports.NotificationRecord{"message": "weekly support report generated"}); err != nil {
		return nil, err
	}

	entry := a.append(domain.AutomationEntry{
		Action: domain.ActionWeeklyReport,
		Status: "generated",
		Detail: map[string]string{"delivery": "email,chat"},
	})
	a.logger.Info("weekly report generated")
	return entry, nil
}

// Log returns a copy of the automation audit log.
func (a *Automation) Log() []domain.AutomationEntry {
	out := make([]domain.AutomationEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// ExportLog writes the audit log to path as indented JSON.
func (a *Automation) ExportLog(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewIOError("automation.ExportLog", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(a.entries); err != nil {
		return apperrors.NewIOError("automation.ExportLog", path, err)
	}

	a.logger.Info("automation log exported", "path", path, "entries", len(a.entries))
	return nil
}

func (a *Automation) append(entry domain.AutomationEntry) *domain.AutomationEntry {
	entry.ID = uuid.NewString()
	entry.Timestamp = a.now().UTC()
	a.entries = append(a.entries, entry)
	return &a.entries[len(a.entries)-1]
}
