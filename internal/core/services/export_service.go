package services

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/itops/support-analyzer/internal/core/domain"
	apperrors "github.com/itops/support-analyzer/internal/core/errors"
	"github.com/itops/support-analyzer/internal/core/ports"
)

// exportDocument is the interchange shape consumed by downstream BI tools.
type exportDocument struct {
	Timestamp time.Time               `json:"timestamp"`
	Metrics   *domain.MetricsSnapshot `json:"metrics"`
	Tickets   []*domain.Ticket        `json:"tickets"`
	Summary   exportSummary           `json:"summary"`
}

type exportSummary struct {
	TotalTickets int             `json:"total_tickets"`
	DateRange    exportDateRange `json:"date_range"`
}

type exportDateRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// JSONExporter serializes ticket and metrics data for BI ingestion.
type JSONExporter struct {
	logger *slog.Logger
	now    func() time.Time
}

var _ ports.ExportService = (*JSONExporter)(nil)

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter(logger *slog.Logger) *JSONExporter {
	return &JSONExporter{
		logger: logger.With("component", "exporter"),
		now:    time.Now,
	}
}

// ExportJSON writes {timestamp, metrics, tickets, summary} to path as
// indented UTF-8 JSON with non-ASCII characters preserved, overwriting any
// existing file. Filesystem failures surface as IO errors.
func (e *JSONExporter) ExportJSON(snapshot *domain.MetricsSnapshot, tickets []*domain.Ticket, path string) error {
	if tickets == nil {
		tickets = []*domain.Ticket{}
	}

	doc := exportDocument{
		Timestamp: e.now().UTC(),
		Metrics:   snapshot,
		Tickets:   tickets,
		Summary: exportSummary{
			TotalTickets: len(tickets),
			DateRange:    dateRange(tickets),
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewIOError("export.ExportJSON", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return apperrors.NewIOError("export.ExportJSON", path, err)
	}
	if err := f.Sync(); err != nil {
		return apperrors.NewIOError("export.ExportJSON", path, err)
	}

	e.logger.Info("export written", "path", path, "tickets", len(tickets))
	return nil
}

// dateRange finds the earliest and latest creation dates, nil on empty input.
func dateRange(tickets []*domain.Ticket) exportDateRange {
	if len(tickets) == 0 {
		return exportDateRange{}
	}
	start, end := tickets[0].CreatedAt, tickets[0].CreatedAt
	for _, t := range tickets[1:] {
		if t.CreatedAt.Before(start) {
			start = t.CreatedAt
		}
		if t.CreatedAt.After(end) {
			end = t.CreatedAt
		}
	}
	return exportDateRange{Start: &start, End: &end}
}
