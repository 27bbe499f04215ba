package domain

import "time"

// Automation action names, mirroring the process catalogue the automation
// log is consumed by.
const (
	ActionCreateTicket      = "create_ticket"
	ActionAutoAssign        = "auto_assign"
	ActionChatNotification  = "chat_notification"
	ActionWeeklyReport      = "weekly_report"
	ActionEscalateTickets   = "escalate_tickets"
)

// AutomationEntry is one record in the automation audit log.
type AutomationEntry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    string            `json:"action"`
	TicketID  string            `json:"ticket_id,omitempty"`
	Status    string            `json:"status"`
	Detail    map[string]string `json:"detail,omitempty"`
}

// Acknowledgement is the record a notification sink returns for an accepted
// delivery. Sinks are simulated: an acknowledgement proves only that the
// record was accepted, not that anything external happened.
type Acknowledgement struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
}
