package domain

import (
	"errors"
	"fmt"
	"time"
)

// Pre-defined errors for domain-specific validation.
var (
	ErrTicketIDRequired          = errors.New("ticket ID is required")
	ErrInvalidStatus             = errors.New("invalid ticket status")
	ErrInvalidSatisfaction       = errors.New("customer satisfaction must be between 1 and 5")
	ErrNegativeResolutionHours   = errors.New("resolution hours must not be negative")
	ErrResolutionFieldsMismatch  = errors.New("resolved_at, resolution_hours and customer_satisfaction must be jointly present or jointly absent")
	ErrResolutionWithoutTerminal = errors.New("resolution fields require a terminal status")
)

// TicketStatus represents the lifecycle state of a ticket.
type TicketStatus string

const (
	StatusOpen       TicketStatus = "Open"
	StatusInProgress TicketStatus = "In Progress"
	StatusResolved   TicketStatus = "Resolved"
	StatusClosed     TicketStatus = "Closed"
)

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow      TicketPriority = "Low"
	PriorityMedium   TicketPriority = "Medium"
	PriorityHigh     TicketPriority = "High"
	PriorityCritical TicketPriority = "Critical"
)

// Categorical attribute pools shared by the generator and the automation
// routing rules.
var (
	Categories = []string{"Hardware", "Software", "Network", "Access", "Email", "Printer"}
	Priorities = []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	Channels   = []string{"Email", "Phone", "Chat", "Portal", "Slack"}
	Agents     = []string{"Agent1", "Agent2", "Agent3", "Agent4"}
)

// Ticket is the core domain entity: one support request with lifecycle state
// and timing/quality attributes.
type Ticket struct {
	TicketID             string         `json:"ticket_id"`
	CreatedAt            time.Time      `json:"created_at"`
	ResolvedAt           *time.Time     `json:"resolved_at,omitempty"`
	Category             string         `json:"category"`
	Priority             TicketPriority `json:"priority"`
	Status               TicketStatus   `json:"status"`
	Channel              string         `json:"channel"`
	AssignedAgent        string         `json:"assigned_agent"`
	ResolutionHours      *float64       `json:"resolution_hours,omitempty"`
	CustomerSatisfaction *int           `json:"customer_satisfaction,omitempty"`
	Description          string         `json:"description"`
}

// IsResolved reports whether the ticket is in a terminal status.
func (t *Ticket) IsResolved() bool {
	return t.Status == StatusResolved || t.Status == StatusClosed
}

// HasResolutionFields reports whether all three resolution attributes are set.
func (t *Ticket) HasResolutionFields() bool {
	return t.ResolvedAt != nil && t.ResolutionHours != nil && t.CustomerSatisfaction != nil
}

// Validate enforces the resolution invariant: resolved_at, resolution_hours
// and customer_satisfaction are jointly present or jointly absent, and only
// present on a terminal status.
func (t *Ticket) Validate() error {
	if t.TicketID == "" {
		return ErrTicketIDRequired
	}

	switch t.Status {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	present := 0
	if t.ResolvedAt != nil {
		present++
	}
	if t.ResolutionHours != nil {
		present++
	}
	if t.CustomerSatisfaction != nil {
		present++
	}
	if present != 0 && present != 3 {
		return ErrResolutionFieldsMismatch
	}

	if present == 3 {
		if !t.IsResolved() {
			return ErrResolutionWithoutTerminal
		}
		if *t.ResolutionHours < 0 {
			return ErrNegativeResolutionHours
		}
		if *t.CustomerSatisfaction < 1 || *t.CustomerSatisfaction > 5 {
			return ErrInvalidSatisfaction
		}
	} else if t.IsResolved() {
		return ErrResolutionFieldsMismatch
	}

	return nil
}

// Resolve marks the ticket resolved, setting all three resolution fields
// consistently.
func (t *Ticket) Resolve(status TicketStatus, hours float64, satisfaction int) error {
	if status != StatusResolved && status != StatusClosed {
		return ErrResolutionWithoutTerminal
	}
	if hours < 0 {
		return ErrNegativeResolutionHours
	}
	if satisfaction < 1 || satisfaction > 5 {
		return ErrInvalidSatisfaction
	}

	resolvedAt := t.CreatedAt.Add(time.Duration(hours * float64(time.Hour)))
	t.Status = status
	t.ResolvedAt = &resolvedAt
	t.ResolutionHours = &hours
	t.CustomerSatisfaction = &satisfaction
	return nil
}
