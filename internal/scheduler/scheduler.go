package scheduler

import (
	"context"
	"log/slog"
	"time"

	"events_rss/internal/domain"
)

// Generator defines the interface for a full generation run.
type Generator interface {
	GenerateAll(ctx context.Context) []domain.FeedStats
}

// Scheduler runs the generator once and, if an interval is configured,
// keeps re-running it until the context is cancelled.
type Scheduler struct {
	generator Generator
	interval  time.Duration
	logger    *slog.Logger
}

func NewScheduler(generator Generator, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		generator: generator,
		interval:  interval,
		logger:    logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.runOnce(ctx)

	if s.interval <= 0 {
		return nil
	}

	s.logger.Info("scheduler started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, 15*time.Minute)
	defer cancel()

	stats := s.generator.GenerateAll(runCtx)

	var inserted, duplicates, errors int
	for _, st := range stats {
		inserted += st.Inserted
		duplicates += st.Duplicates
		errors += st.Errors
	}

	s.logger.Info("generation run completed",
		"feeds", len(stats),
		"inserted", inserted,
		"duplicates", duplicates,
		"errors", errors,
	)
}
