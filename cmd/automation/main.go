// Command automation runs the simulated support-process automation: a
// ticket-desk push, category-based auto-assignment, chat notifications, the
// weekly report record and a stale-ticket escalation sweep, ending with an
// audit log export.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/itops/support-analyzer/internal/adapters/secondary/notify"
	"github.com/itops/support-analyzer/internal/config"
	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
	"github.com/itops/support-analyzer/internal/core/services"
	"github.com/itops/support-analyzer/internal/infrastructure/logging"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Structured Logger
	logger := logging.NewLogger(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Output:      os.Stderr,
		ServiceName: cfg.App.Name,
		Environment: cfg.App.Environment,
	})

	ctx := logging.WithRunID(context.Background(), uuid.NewString())

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("automation run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// 3. Simulated Sinks (Secondary Adapters)
	ticketDesk := notify.NewTicketDeskSink(cfg.Automation.NotifyRatePerSec, cfg.Automation.NotifyBurst, logger)
	chat := notify.NewChatSink(cfg.Automation.ChatChannel, cfg.Automation.NotifyRatePerSec, cfg.Automation.NotifyBurst, logger)

	automation := services.NewAutomation(ticketDesk, chat, logger)

	// 4. Walk one ticket through the simulated integrations
	ticket := &domain.Ticket{
		TicketID:    "TICK-0001",
		CreatedAt:   time.Now().UTC().Truncate(24 * time.Hour),
		Category:    "Hardware",
		Priority:    domain.PriorityHigh,
		Status:      domain.StatusOpen,
		Channel:     "Portal",
		Description: "Printer problem",
	}

	if _, err := automation.NotifyTicketCreated(ctx, ticket); err != nil {
		return err
	}
	if _, err := automation.AutoAssign(ctx, ticket); err != nil {
		return err
	}
	if _, err := automation.NotifyChat(ctx, fmt.Sprintf("New ticket %s assigned to %s - %s", ticket.TicketID, ticket.AssignedAgent, ticket.Category)); err != nil {
		return err
	}
	if _, err := automation.WeeklyReport(ctx); err != nil {
		return err
	}

	// 5. Escalation sweep over a generated ticket set
	generator := services.NewGeneratorService(cfg.Generator.WindowDays, logger)
	tickets := generator.Generate(cfg.Generator.TicketCount, cfg.Generator.Seed)
	if _, err := automation.EscalateStale(ctx, tickets, ports.EscalationParams{
		Threshold: time.Duration(cfg.Automation.EscalationDays) * 24 * time.Hour,
		Now:       time.Now().UTC(),
	}); err != nil {
		return err
	}

	// 6. Export the audit log
	if err := automation.ExportLog(cfg.Automation.LogPath); err != nil {
		return err
	}

	fmt.Println("\n============================================================")
	fmt.Println("AUTOMATIONS EXECUTED")
	fmt.Println("============================================================")
	for _, entry := range automation.Log() {
		fmt.Printf("  %s: %s\n", entry.Action, entry.Status)
	}
	return nil
}
