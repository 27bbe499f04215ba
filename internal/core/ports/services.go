package ports

import (
	"context"
	"time"

	"github.com/itops/support-analyzer/internal/core/domain"
)

// SampleGenerator defines the port for synthetic ticket generation.
type SampleGenerator interface {
	// Generate deterministically produces n tickets for a fixed seed.
	Generate(n int, seed int64) []*domain.Ticket
}

// MetricsService defines the port for the metrics engine. Both operations
// are pure functions of their input: no side effects, no storage access.
type MetricsService interface {
	ComputeMetrics(tickets []*domain.Ticket) *domain.MetricsSnapshot
	GroupedReport(tickets []*domain.Ticket) *domain.GroupedReport
}

// ReportService defines the port for human-readable report rendering.
type ReportService interface {
	FormatSummary(snapshot *domain.MetricsSnapshot) string
	FormatAgentPerformance(rows []domain.AgentPerformanceRow) string
}

// ExportService defines the port for machine-readable export.
type ExportService interface {
	// ExportJSON writes the BI export document to path, overwriting any
	// existing file.
	ExportJSON(snapshot *domain.MetricsSnapshot, tickets []*domain.Ticket, path string) error
}

// RunParams defines the input for one batch pipeline run.
type RunParams struct {
	TicketCount int
	Seed        int64
	ExportPath  string
}

// AnalyzerService runs the batch pipeline end to end: schema, sample data,
// metrics, summary, export.
type AnalyzerService interface {
	Run(ctx context.Context, params RunParams) (*domain.MetricsSnapshot, error)
}

// NotificationRecord is the opaque record a sink accepts. Keys are free-form;
// sinks pass them through untyped.
type NotificationRecord map[string]string

// NotificationSink defines the port for a simulated external notification
// target (ticket desk, chat). The metrics core never calls this.
type NotificationSink interface {
	Send(ctx context.Context, record NotificationRecord) (*domain.Acknowledgement, error)
}

// EscalationParams defines the input for the stale-ticket scan.
type EscalationParams struct {
	Threshold time.Duration
	Now       time.Time
}

// AutomationService defines the port for the simulated routing and process
// automation built on top of the ticket data. Every operation appends to an
// in-memory audit log.
type AutomationService interface {
	NotifyTicketCreated(ctx context.Context, ticket *domain.Ticket) (*domain.AutomationEntry, error)
	NotifyChat(ctx context.Context, message string) (*domain.AutomationEntry, error)
	AutoAssign(ctx context.Context, ticket *domain.Ticket) (*domain.AutomationEntry, error)
	EscalateStale(ctx context.Context, tickets []*domain.Ticket, params EscalationParams) (*domain.AutomationEntry, error)
	WeeklyReport(ctx context.Context) (*domain.AutomationEntry, error)
	Log() []domain.AutomationEntry
	ExportLog(path string) error
}
