package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
)

const reportRule = "============================================================"

// ReportFormatter renders metrics as text blocks for the terminal.
type ReportFormatter struct{}

var _ ports.ReportService = (*ReportFormatter)(nil)

// NewReportFormatter creates a report formatter.
func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{}
}

// FormatSummary renders the snapshot with a fixed section order: general
// counts, resolution timing, satisfaction, per-category breakdown,
// per-channel breakdown. Map-backed sections are printed in descending count
// order so the output is reproducible.
func (f *ReportFormatter) FormatSummary(snapshot *domain.MetricsSnapshot) string {
	var b strings.Builder

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("IT SUPPORT METRICS REPORT\n")
	b.WriteString(reportRule + "\n")

	b.WriteString("\nGENERAL METRICS\n")
	fmt.Fprintf(&b, "  Total tickets: %d\n", snapshot.TotalTickets)
	fmt.Fprintf(&b, "  Resolved tickets: %d\n", snapshot.ResolvedTickets)
	fmt.Fprintf(&b, "  Open tickets: %d\n", snapshot.OpenTickets)
	fmt.Fprintf(&b, "  Resolution rate: %.2f%%\n", snapshot.ResolutionRate)

	b.WriteString("\nRESOLUTION TIMES\n")
	fmt.Fprintf(&b, "  Mean resolution time: %.2f hours\n", snapshot.MeanResolutionHours)
	fmt.Fprintf(&b, "  SLA 24h: %.2f%%\n", snapshot.SLA24hRate)

	b.WriteString("\nSATISFACTION\n")
	fmt.Fprintf(&b, "  Mean satisfaction: %.2f/5\n", snapshot.MeanSatisfaction)

	b.WriteString("\nTICKETS BY CATEGORY\n")
	writeCountSection(&b, snapshot.TicketsByCategory)

	b.WriteString("\nTICKETS BY CHANNEL\n")
	writeCountSection(&b, snapshot.TicketsByChannel)

	b.WriteString(reportRule + "\n")
	return b.String()
}

// FormatAgentPerformance renders the per-agent block of the grouped report.
func (f *ReportFormatter) FormatAgentPerformance(rows []domain.AgentPerformanceRow) string {
	var b strings.Builder

	b.WriteString(reportRule + "\n")
	b.WriteString("AGENT PERFORMANCE (RESOLVED TICKETS)\n")
	b.WriteString(reportRule + "\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s: %d tickets, %.2fh mean, %.2f satisfaction\n",
			row.Agent, row.Count, row.MeanResolutionHours, row.MeanSatisfaction)
	}
	return b.String()
}

// writeCountSection prints a count map sorted by count descending, ties
// broken alphabetically.
func writeCountSection(b *strings.Builder, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		fmt.Fprintf(b, "  %s: %d\n", key, counts[key])
	}
}
