package services

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/itops/support-analyzer/internal/core/domain"
	"github.com/itops/support-analyzer/internal/core/ports"
)

// meanResolutionHours is the mean of the exponential distribution resolution
// times are drawn from.
const meanResolutionHours = 24.0

// resolvedShare is the fraction of generated tickets that are resolved.
const resolvedShare = 0.8

// GeneratorService produces synthetic tickets with distribution-shaped
// attributes. Output is fully determined by the seed: the same seed always
// yields the same ticket set for a fixed clock.
type GeneratorService struct {
	windowDays int
	now        func() time.Time
	logger     *slog.Logger
}

var _ ports.SampleGenerator = (*GeneratorService)(nil)

// NewGeneratorService creates a generator over the trailing windowDays window.
func NewGeneratorService(windowDays int, logger *slog.Logger) *GeneratorService {
	return NewGeneratorServiceWithClock(windowDays, logger, time.Now)
}

// NewGeneratorServiceWithClock creates a generator with an injected clock.
func NewGeneratorServiceWithClock(windowDays int, logger *slog.Logger, now func() time.Time) *GeneratorService {
	return &GeneratorService{
		windowDays: windowDays,
		now:        now,
		logger:     logger.With("component", "generator"),
	}
}

// Generate produces n tickets seeded from seed.
//
// Shape of the data: creation dates uniform over the trailing window,
// resolution times exponential with a 24h mean, 80% of tickets resolved
// (status Resolved 70% / Closed 30%), the rest open (Open 30% /
// In Progress 70%). Resolved tickets carry resolved_at = created_at +
// resolution time and a uniform satisfaction score in [1,5].
func (s *GeneratorService) Generate(n int, seed int64) []*domain.Ticket {
	rng := rand.New(rand.NewSource(seed))

	today := s.now().UTC().Truncate(24 * time.Hour)
	windowStart := today.AddDate(0, 0, -s.windowDays)

	tickets := make([]*domain.Ticket, 0, n)
	for i := 0; i < n; i++ {
		createdAt := windowStart.AddDate(0, 0, rng.Intn(s.windowDays))
		resolutionHours := rng.ExpFloat64() * meanResolutionHours

		ticket := &domain.Ticket{
			TicketID:      fmt.Sprintf("TICK-%04d", i+1),
			CreatedAt:     createdAt,
			Category:      domain.Categories[rng.Intn(len(domain.Categories))],
			Priority:      weightedPriority(rng),
			Channel:       domain.Channels[rng.Intn(len(domain.Channels))],
			AssignedAgent: domain.Agents[rng.Intn(len(domain.Agents))],
			Description:   fmt.Sprintf("Sample ticket %d", i+1),
		}

		if rng.Float64() > 1-resolvedShare {
			status := domain.StatusResolved
			if rng.Float64() >= 0.7 {
				status = domain.StatusClosed
			}
			satisfaction := rng.Intn(5) + 1
			// Resolve cannot fail here: status is terminal, hours are
			// non-negative, satisfaction is in range.
			_ = ticket.Resolve(status, resolutionHours, satisfaction)
		} else {
			ticket.Status = domain.StatusInProgress
			if rng.Float64() < 0.3 {
				ticket.Status = domain.StatusOpen
			}
		}

		tickets = append(tickets, ticket)
	}

	s.logger.Info("sample tickets generated", "count", len(tickets), "seed", seed)
	return tickets
}

// weightedPriority draws a priority with weights Low 0.3, Medium 0.4,
// High 0.2, Critical 0.1.
func weightedPriority(rng *rand.Rand) domain.TicketPriority {
	weights := []float64{0.3, 0.4, 0.2, 0.1}
	r := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if r < acc {
			return domain.Priorities[i]
		}
	}
	return domain.Priorities[len(domain.Priorities)-1]
}
