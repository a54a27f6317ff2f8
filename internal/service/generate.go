package service

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"sync"
	"time"

	"events_rss/internal/config"
	"events_rss/internal/domain"
	"events_rss/internal/feed"
)

// Config holds the orchestration settings for a generation run.
type Config struct {
	Feeds         []config.FeedConfig
	HorizonDays   int
	ChannelLink   string
	Copyright     string
	FeedURLPrefix string
}

// Generator runs the ingestion pipeline for every configured feed:
// discovery, resolution, enrichment, rendering, merge and persistence.
type Generator struct {
	source    EventSource
	renderer  Renderer
	store     FeedStore
	relocator Relocator
	notifier  Notifier
	logger    *slog.Logger
	cfg       Config

	now func() time.Time
}

func New(
	source EventSource,
	renderer Renderer,
	store FeedStore,
	relocator Relocator,
	notifier Notifier,
	logger *slog.Logger,
	cfg Config,
) *Generator {
	return &Generator{
		source:    source,
		renderer:  renderer,
		store:     store,
		relocator: relocator,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// GenerateAll generates every configured feed. Feeds are independent, so
// each runs in its own goroutine with its own single-owner aggregator; a
// failing feed never affects the others.
func (g *Generator) GenerateAll(ctx context.Context) []domain.FeedStats {
	stats := make([]domain.FeedStats, len(g.cfg.Feeds))

	var wg sync.WaitGroup
	for i, fc := range g.cfg.Feeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats[i] = g.Generate(ctx, fc)
		}()
	}
	wg.Wait()

	return stats
}

// Generate builds one feed: the existing document is loaded as the
// deduplication base, events for the next HorizonDays days are merged in,
// and the result is written back in full.
func (g *Generator) Generate(ctx context.Context, fc config.FeedConfig) domain.FeedStats {
	start := g.now()
	logger := g.logger.With("feed", fc.Name)
	stats := domain.FeedStats{Feed: fc.Name}

	logger.Info("starting feed generation",
		"title", fc.Title,
		"category", fc.Category,
		"horizon_days", g.cfg.HorizonDays,
	)

	current, err := g.store.Load(fc.Name)
	switch {
	case err == nil:
		logger.Info("loaded existing feed", "items", len(current.Items))
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("no existing feed, starting fresh")
	default:
		// An unreadable existing feed would lose the dedup base;
		// overwriting it blindly is worse than skipping this feed.
		logger.Error("failed to load existing feed", "error", err)
		stats.Errors++
		return stats
	}

	current.Title = fc.Title
	current.Link = g.cfg.ChannelLink
	current.Copyright = g.cfg.Copyright

	for offset := 0; offset < g.cfg.HorizonDays; offset++ {
		day := start.AddDate(0, 0, offset)

		events, err := g.source.Events(ctx, day, fc.Category)
		if err != nil {
			logger.Warn("failed to process listing page",
				"date", day.Format("2006-01-02"),
				"error", err,
			)
			stats.Errors++
			continue
		}

		for _, ev := range events {
			stats.Resolved++

			body, err := g.renderer.Render(ev)
			if err != nil {
				logger.Warn("failed to render event", "title", ev.Title, "error", err)
				stats.Errors++
				continue
			}

			item := feed.Item{
				Title:       ev.Title,
				Description: body,
				Link:        ev.DetailURL,
				PubDate:     feed.PubDate(ev.Start),
			}

			var inserted bool
			current, inserted = feed.Merge(current, item)
			if inserted {
				stats.Inserted++
				logger.Info("added event", "title", item.Title, "pub_date", item.PubDate)
			} else {
				stats.Duplicates++
				logger.Info("skipping duplicate event", "title", item.Title, "pub_date", item.PubDate)
			}
		}
	}

	if err := g.store.Write(fc.Name, current); err != nil {
		logger.Error("failed to write feed", "error", err)
		stats.Errors++
		stats.Duration = g.now().Sub(start)
		return stats
	}

	if n, err := g.store.CountItems(fc.Name); err == nil {
		logger.Info("feed written", "items", n)
	}

	g.postProcess(ctx, fc, logger)

	stats.Duration = g.now().Sub(start)
	logger.Info("feed generation completed",
		"resolved", stats.Resolved,
		"inserted", stats.Inserted,
		"duplicates", stats.Duplicates,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats
}

// postProcess runs the collaborators that consume the finished file. The
// pipeline does not depend on their success.
func (g *Generator) postProcess(ctx context.Context, fc config.FeedConfig, logger *slog.Logger) {
	if g.relocator != nil {
		dest, err := g.relocator.Move(fc.Name)
		switch {
		case err != nil:
			logger.Warn("failed to move feed file", "error", err)
		case dest != "":
			logger.Info("moved feed file", "destination", dest)
		}
	}

	if g.notifier != nil {
		if err := g.notifier.NotifyFeedUpdated(ctx, g.cfg.FeedURLPrefix); err != nil {
			logger.Warn("failed to notify feed reader", "error", err)
		}
	}
}
