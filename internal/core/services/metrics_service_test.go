package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/services"
)

func resolvedTicket(t *testing.T, id, category, agent string, hours float64, satisfaction int) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{
		TicketID:      id,
		CreatedAt:     time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		Category:      category,
		Priority:      domain.PriorityMedium,
		Status:        domain.StatusOpen,
		Channel:       "Email",
		AssignedAgent: agent,
	}
	require.NoError(t, ticket.Resolve(domain.StatusResolved, hours, satisfaction))
	return ticket
}

func unresolvedTicket(id, category string, createdAt time.Time) *domain.Ticket {
	return &domain.Ticket{
		TicketID:      id,
		CreatedAt:     createdAt,
		Category:      category,
		Priority:      domain.PriorityLow,
		Status:        domain.StatusOpen,
		Channel:       "Phone",
		AssignedAgent: "Agent4",
	}
}

func TestMetricsEngine_ComputeMetrics_Empty(t *testing.T) {
	engine := services.NewMetricsEngine()

	snapshot := engine.ComputeMetrics(nil)

	assert.Equal(t, 0, snapshot.TotalTickets)
	assert.Equal(t, 0, snapshot.ResolvedTickets)
	assert.Equal(t, 0, snapshot.OpenTickets)
	assert.Zero(t, snapshot.ResolutionRate)
	assert.Zero(t, snapshot.MeanResolutionHours)
	assert.Zero(t, snapshot.MeanSatisfaction)
	assert.Zero(t, snapshot.SLA24hRate)
	assert.Empty(t, snapshot.TicketsByCategory)
	assert.Empty(t, snapshot.TicketsByPriority)
	assert.Empty(t, snapshot.TicketsByChannel)
	assert.NotNil(t, snapshot.TicketsByCategory)
}

func TestMetricsEngine_ComputeMetrics_Scenario(t *testing.T) {
	engine := services.NewMetricsEngine()

	// 4 resolved with hours [10, 20, 30, 50] and satisfactions [5, 4, 3, 2],
	// 1 open.
	tickets := []*domain.Ticket{
		resolvedTicket(t, "TICK-0001", "Hardware", "Agent1", 10, 5),
		resolvedTicket(t, "TICK-0002", "Hardware", "Agent1", 20, 4),
		resolvedTicket(t, "TICK-0003", "Software", "Agent2", 30, 3),
		resolvedTicket(t, "TICK-0004", "Network", "Agent2", 50, 2),
		unresolvedTicket("TICK-0005", "Email", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	snapshot := engine.ComputeMetrics(tickets)

	assert.Equal(t, 5, snapshot.TotalTickets)
	assert.Equal(t, 4, snapshot.ResolvedTickets)
	assert.Equal(t, 1, snapshot.OpenTickets)
	assert.Equal(t, 80.0, snapshot.ResolutionRate)
	assert.Equal(t, 27.5, snapshot.MeanResolutionHours)
	assert.Equal(t, 3.5, snapshot.MeanSatisfaction)
	// Only the 10h and 20h tickets fit the 24h budget: 2/4.
	assert.Equal(t, 50.0, snapshot.SLA24hRate)

	assert.Equal(t, map[string]int{"Hardware": 2, "Software": 1, "Network": 1, "Email": 1}, snapshot.TicketsByCategory)
	assert.Equal(t, map[string]int{"Medium": 4, "Low": 1}, snapshot.TicketsByPriority)
	assert.Equal(t, map[string]int{"Email": 4, "Phone": 1}, snapshot.TicketsByChannel)
}

func TestMetricsEngine_RatesAlwaysInRange(t *testing.T) {
	engine := services.NewMetricsEngine()
	gen := newTestGenerator(t)

	for _, seed := range []int64{1, 2, 3, 42, 99} {
		snapshot := engine.ComputeMetrics(gen.Generate(300, seed))
		assert.GreaterOrEqual(t, snapshot.ResolutionRate, 0.0)
		assert.LessOrEqual(t, snapshot.ResolutionRate, 100.0)
		assert.GreaterOrEqual(t, snapshot.SLA24hRate, 0.0)
		assert.LessOrEqual(t, snapshot.SLA24hRate, 100.0)
	}
}

func TestMetricsEngine_GroupedReport_CategoryCounts(t *testing.T) {
	engine := services.NewMetricsEngine()

	tickets := []*domain.Ticket{
		resolvedTicket(t, "TICK-0001", "A", "Agent1", 5, 5),
		resolvedTicket(t, "TICK-0002", "A", "Agent1", 15, 4),
		unresolvedTicket("TICK-0003", "B", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	snapshot := engine.ComputeMetrics(tickets)
	assert.Equal(t, map[string]int{"A": 2, "B": 1}, snapshot.TicketsByCategory)

	report := engine.GroupedReport(tickets)
	require.Len(t, report.ByCategoryStatus, 2)
	assert.Equal(t, "A", report.ByCategoryStatus[0].Category)
	assert.Equal(t, "Resolved", report.ByCategoryStatus[0].Status)
	assert.Equal(t, 2, report.ByCategoryStatus[0].Count)
	assert.Equal(t, 10.0, report.ByCategoryStatus[0].MeanResolutionHours)
	assert.Equal(t, "B", report.ByCategoryStatus[1].Category)
	assert.Equal(t, 1, report.ByCategoryStatus[1].Count)
}

func TestMetricsEngine_GroupedReport_AgentPerformance(t *testing.T) {
	engine := services.NewMetricsEngine()

	tickets := []*domain.Ticket{
		resolvedTicket(t, "TICK-0001", "Hardware", "Agent1", 10, 5),
		resolvedTicket(t, "TICK-0002", "Hardware", "Agent1", 30, 3),
		resolvedTicket(t, "TICK-0003", "Software", "Agent2", 20, 4),
		// Open tickets do not count towards agent performance.
		unresolvedTicket("TICK-0004", "Email", time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	rows := engine.GroupedReport(tickets).ByAgent
	require.Len(t, rows, 2)

	assert.Equal(t, "Agent1", rows[0].Agent)
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, 20.0, rows[0].MeanResolutionHours)
	assert.Equal(t, 4.0, rows[0].MeanSatisfaction)

	assert.Equal(t, "Agent2", rows[1].Agent)
	assert.Equal(t, 1, rows[1].Count)
}

func TestMetricsEngine_GroupedReport_WeeklyTrend(t *testing.T) {
	engine := services.NewMetricsEngine()

	// 12 consecutive weeks, one open ticket created per week, plus one
	// resolved ticket in the most recent week.
	var tickets []*domain.Ticket
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
	for i := 0; i < 12; i++ {
		tickets = append(tickets, unresolvedTicket(
			fmt.Sprintf("TICK-%04d", i+1), "Hardware", base.AddDate(0, 0, 7*i)))
	}
	last := resolvedTicket(t, "TICK-0099", "Hardware", "Agent1", 4, 5)
	last.CreatedAt = base.AddDate(0, 0, 7*11)
	tickets = append(tickets, last)

	rows := engine.GroupedReport(tickets).WeeklyTrend
	require.Len(t, rows, 8, "trend is capped at the 8 most recent weeks")

	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i-1].Week, rows[i].Week, "weeks must be in descending order")
	}

	assert.Equal(t, "2026-W13", rows[0].Week)
	assert.Equal(t, 2, rows[0].Created)
	assert.Equal(t, 1, rows[0].Resolved)
}
