package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
)

// slaThresholdHours is the resolution-time budget the SLA rate is measured
// against.
const slaThresholdHours = 24.0

// weeklyTrendLimit caps the weekly trend at the most recent weeks.
const weeklyTrendLimit = 8

// MetricsEngine turns raw ticket rows into a metrics snapshot. Both entry
// points are pure functions over their input slice.
type MetricsEngine struct{}

var _ ports.MetricsService = (*MetricsEngine)(nil)

// NewMetricsEngine creates a metrics engine.
func NewMetricsEngine() *MetricsEngine {
	return &MetricsEngine{}
}

// ComputeMetrics computes the aggregate snapshot in a single pass.
// Empty input yields an all-zero snapshot with empty grouped maps.
func (e *MetricsEngine) ComputeMetrics(tickets []*domain.Ticket) *domain.MetricsSnapshot {
	snapshot := &domain.MetricsSnapshot{
		TicketsByCategory: make(map[string]int),
		TicketsByPriority: make(map[string]int),
		TicketsByChannel:  make(map[string]int),
	}

	var (
		resolutionSum    float64
		resolutionCount  int
		within24h        int
		satisfactionSum  int
		satisfactionSeen int
	)

	for _, t := range tickets {
		snapshot.TotalTickets++
		if t.IsResolved() {
			snapshot.ResolvedTickets++
		}

		snapshot.TicketsByCategory[t.Category]++
		snapshot.TicketsByPriority[string(t.Priority)]++
		snapshot.TicketsByChannel[t.Channel]++

		if t.ResolutionHours != nil {
			resolutionSum += *t.ResolutionHours
			resolutionCount++
			if *t.ResolutionHours <= slaThresholdHours {
				within24h++
			}
		}
		if t.CustomerSatisfaction != nil {
			satisfactionSum += *t.CustomerSatisfaction
			satisfactionSeen++
		}
	}

	snapshot.OpenTickets = snapshot.TotalTickets - snapshot.ResolvedTickets
	if snapshot.TotalTickets > 0 {
		snapshot.ResolutionRate = round2(float64(snapshot.ResolvedTickets) / float64(snapshot.TotalTickets) * 100)
	}
	if resolutionCount > 0 {
		snapshot.MeanResolutionHours = round2(resolutionSum / float64(resolutionCount))
		snapshot.SLA24hRate = round2(float64(within24h) / float64(resolutionCount) * 100)
	}
	if satisfactionSeen > 0 {
		snapshot.MeanSatisfaction = round2(float64(satisfactionSum) / float64(satisfactionSeen))
	}

	return snapshot
}

// GroupedReport computes three independent aggregations: (category, status)
// counts with mean resolution time, per-agent performance over resolved
// tickets, and an ISO-week created-vs-resolved trend capped at the 8 most
// recent weeks in descending week order.
func (e *MetricsEngine) GroupedReport(tickets []*domain.Ticket) *domain.GroupedReport {
	return &domain.GroupedReport{
		ByCategoryStatus: groupByCategoryStatus(tickets),
		ByAgent:          groupByAgent(tickets),
		WeeklyTrend:      weeklyTrend(tickets),
	}
}

type runningMean struct {
	count int
	sum   float64
	seen  int
}

func groupByCategoryStatus(tickets []*domain.Ticket) []domain.CategoryStatusRow {
	type key struct {
		category string
		status   string
	}
	buckets := make(map[key]*runningMean)
	for _, t := range tickets {
		k := key{category: t.Category, status: string(t.Status)}
		b, ok := buckets[k]
		if !ok {
			b = &runningMean{}
			buckets[k] = b
		}
		b.count++
		if t.ResolutionHours != nil {
			b.sum += *t.ResolutionHours
			b.seen++
		}
	}

	rows := make([]domain.CategoryStatusRow, 0, len(buckets))
	for k, b := range buckets {
		row := domain.CategoryStatusRow{
			Category: k.category,
			Status:   k.status,
			Count:    b.count,
		}
		if b.seen > 0 {
			row.MeanResolutionHours = round2(b.sum / float64(b.seen))
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Category != rows[j].Category {
			return rows[i].Category < rows[j].Category
		}
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Status < rows[j].Status
	})
	return rows
}

func groupByAgent(tickets []*domain.Ticket) []domain.AgentPerformanceRow {
	type agentStats struct {
		count     int
		hoursSum  float64
		hoursSeen int
		satSum    int
		satSeen   int
	}
	buckets := make(map[string]*agentStats)
	for _, t := range tickets {
		// Agent performance is measured over resolved tickets only.
		if !t.IsResolved() {
			continue
		}
		b, ok := buckets[t.AssignedAgent]
		if !ok {
			b = &agentStats{}
			buckets[t.AssignedAgent] = b
		}
		b.count++
		if t.ResolutionHours != nil {
			b.hoursSum += *t.ResolutionHours
			b.hoursSeen++
		}
		if t.CustomerSatisfaction != nil {
			b.satSum += *t.CustomerSatisfaction
			b.satSeen++
		}
	}

	rows := make([]domain.AgentPerformanceRow, 0, len(buckets))
	for agent, b := range buckets {
		row := domain.AgentPerformanceRow{Agent: agent, Count: b.count}
		if b.hoursSeen > 0 {
			row.MeanResolutionHours = round2(b.hoursSum / float64(b.hoursSeen))
		}
		if b.satSeen > 0 {
			row.MeanSatisfaction = round2(float64(b.satSum) / float64(b.satSeen))
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Agent < rows[j].Agent
	})
	return rows
}

func weeklyTrend(tickets []*domain.Ticket) []domain.WeeklyTrendRow {
	type weekStats struct {
		created  int
		resolved int
	}
	buckets := make(map[string]*weekStats)
	for _, t := range tickets {
		week := isoWeekKey(t.CreatedAt)
		b, ok := buckets[week]
		if !ok {
			b = &weekStats{}
			buckets[week] = b
		}
		b.created++
		if t.IsResolved() {
			b.resolved++
		}
	}

	rows := make([]domain.WeeklyTrendRow, 0, len(buckets))
	for week, b := range buckets {
		rows = append(rows, domain.WeeklyTrendRow{Week: week, Created: b.created, Resolved: b.resolved})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Week > rows[j].Week })
	if len(rows) > weeklyTrendLimit {
		rows = rows[:weeklyTrendLimit]
	}
	return rows
}

// isoWeekKey formats a timestamp as its ISO-8601 week, e.g. "2026-W35".
func isoWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
