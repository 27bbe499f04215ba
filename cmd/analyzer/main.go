package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/itops/support-analyzer/internal/adapters/secondary/sqlite"
	"github.com/itops/support-analyzer/internal/config"
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

	logger.Info("starting analyzer",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
		"database", cfg.Database.Path,
	)

	ctx := logging.WithRunID(context.Background(), uuid.NewString())

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}
}

// run owns the storage handle for the duration of the pipeline; the deferred
// close releases it even when a stage fails mid-run.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// 3. Open Storage (Secondary Adapter)
	repo, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer repo.Close()

	// 4. Dependency Injection (Wiring the Hexagon)
	generator := services.NewGeneratorService(cfg.Generator.WindowDays, logger)
	metrics := services.NewMetricsEngine()
	reports := services.NewReportFormatter()
	exporter := services.NewJSONExporter(logger)

	analyzer := services.NewAnalyzer(repo, generator, metrics, reports, exporter, os.Stdout, logger)

	// 5. Run the Batch Pipeline
	_, err = analyzer.Run(ctx, ports.RunParams{
		TicketCount: cfg.Generator.TicketCount,
		Seed:        cfg.Generator.Seed,
		ExportPath:  cfg.Export.Path,
	})
	return err
}
