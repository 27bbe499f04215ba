package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/mocks"
	"github.com/itops/support-analyzer/internal/core/ports"
	"github.com/itops/support-analyzer/internal/core/services"
)

func ackFor(action, target, status string) *domain.Acknowledgement {
	return &domain.Acknowledgement{
		ID:        "ack-1",
		Timestamp: time.Now().UTC(),
		Action:    action,
		Target:    target,
		Status:    status,
	}
}

func TestAutomation_AutoAssign(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name     string
		category string
		priority domain.TicketPriority
		want     string
	}{
		{"hardware goes to Agent1", "Hardware", domain.PriorityLow, "Agent1"},
		{"network goes to Agent1", "Network", domain.PriorityLow, "Agent1"},
		{"software goes to Agent2", "Software", domain.PriorityLow, "Agent2"},
		{"email goes to Agent2", "Email", domain.PriorityLow, "Agent2"},
		{"critical goes to Agent3", "Printer", domain.PriorityCritical, "Agent3"},
		{"everything else goes to Agent4", "Access", domain.PriorityMedium, "Agent4"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			automation := services.NewAutomation(mocks.NewMockNotificationSink(), mocks.NewMockNotificationSink(), testLogger())

			ticket := unresolvedTicket("TICK-0001", tc.category, time.Now().UTC())
			ticket.Priority = tc.priority

			entry, err := automation.AutoAssign(ctx, ticket)

			require.NoError(t, err)
			assert.Equal(t, tc.want, ticket.AssignedAgent)
			assert.Equal(t, domain.ActionAutoAssign, entry.Action)
			assert.Equal(t, tc.want, entry.Detail["assigned_to"])
			assert.NotEmpty(t, entry.ID)
		})
	}
}

func TestAutomation_NotifyTicketCreated(t *testing.T) {
	ctx := context.Background()

	t.Run("pushes record and logs entry", func(t *testing.T) {
		ticketDesk := mocks.NewMockNotificationSink()
		automation := services.NewAutomation(ticketDesk, mocks.NewMockNotificationSink(), testLogger())

		ticketDesk.On("Send", ctx, mock.AnythingOfType("ports.NotificationRecord")).
			Return(ackFor(domain.ActionCreateTicket, "ticket-desk", "success"), nil)

		ticket := unresolvedTicket("TICK-0001", "Hardware", time.Now().UTC())
		entry, err := automation.NotifyTicketCreated(ctx, ticket)

		require.NoError(t, err)
		assert.Equal(t, domain.ActionCreateTicket, entry.Action)
		assert.Equal(t, "TICK-0001", entry.TicketID)
		assert.Equal(t, "success", entry.Status)
		assert.Len(t, automation.Log(), 1)
		ticketDesk.AssertExpectations(t)
	})

	t.Run("sink failure leaves log untouched", func(t *testing.T) {
		ticketDesk := mocks.NewMockNotificationSink()
		automation := services.NewAutomation(ticketDesk, mocks.NewMockNotificationSink(), testLogger())

		sinkErr := errors.New("sink unavailable")
		ticketDesk.On("Send", ctx, mock.Anything).Return(nil, sinkErr)

		_, err := automation.NotifyTicketCreated(ctx, unresolvedTicket("TICK-0001", "Hardware", time.Now().UTC()))

		assert.ErrorIs(t, err, sinkErr)
		assert.Empty(t, automation.Log())
	})
}

func TestAutomation_EscalateStale(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	automation := services.NewAutomation(mocks.NewMockNotificationSink(), mocks.NewMockNotificationSink(), testLogger())

	fresh := unresolvedTicket("TICK-0001", "Hardware", now.Add(-24*time.Hour))
	stale := unresolvedTicket("TICK-0002", "Software", now.Add(-5*24*time.Hour))
	resolvedOld := resolvedTicket(t, "TICK-0003", "Network", "Agent1", 4, 5)
	resolvedOld.CreatedAt = now.Add(-10 * 24 * time.Hour)

	entry, err := automation.EscalateStale(ctx, []*domain.Ticket{fresh, stale, resolvedOld}, ports.EscalationParams{
		Threshold: 3 * 24 * time.Hour,
		Now:       now,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ActionEscalateTickets, entry.Action)
	assert.Equal(t, "1", entry.Detail["tickets_found"])
	assert.Equal(t, "TICK-0002", entry.Detail["ticket_ids"])
}

func TestAutomation_WeeklyReport(t *testing.T) {
	ctx := context.Background()
	chat := mocks.NewMockNotificationSink()
	automation := services.NewAutomation(mocks.NewMockNotificationSink(), chat, testLogger())

	chat.On("Send", ctx, mock.AnythingOfType("ports.NotificationRecord")).
		Return(ackFor(domain.ActionChatNotification, "#it-support", "sent"), nil)

	entry, err := automation.WeeklyReport(ctx)

	require.NoError(t, err)
	assert.Equal(t, domain.ActionWeeklyReport, entry.Action)
	assert.Equal(t, "generated", entry.Status)
	chat.AssertExpectations(t)
}

func TestAutomation_ExportLog(t *testing.T) {
	ctx := context.Background()
	chat := mocks.NewMockNotificationSink()
	automation := services.NewAutomation(mocks.NewMockNotificationSink(), chat, testLogger())

	chat.On("Send", ctx, mock.Anything).
		Return(ackFor(domain.ActionChatNotification, "#it-support", "sent"), nil)

	_, err := automation.NotifyChat(ctx, "hola equipo")
	require.NoError(t, err)
	_, err = automation.AutoAssign(ctx, unresolvedTicket("TICK-0001", "Hardware", time.Now().UTC()))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "automation_log.json")
	require.NoError(t, automation.ExportLog(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []domain.AutomationEntry
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionChatNotification, entries[0].Action)
	assert.Equal(t, domain.ActionAutoAssign, entries[1].Action)
}
