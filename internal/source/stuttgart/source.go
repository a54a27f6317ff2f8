// Package stuttgart scrapes the event calendar of stuttgart.de: listing
// pages are searched one day and one category at a time, each event teaser
// is resolved through its iCalendar file and enriched from the event's own
// detail page.
package stuttgart

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"events_rss/internal/domain"
)

// Fetcher performs the HTTP GETs for the source. Satisfied by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Config holds source configuration.
type Config struct {
	BaseURL         string
	CategoryParam   string
	DefaultImageURL string
	Timezone        *time.Location
}

type Source struct {
	fetch           Fetcher
	baseURL         string
	categoryParam   string
	defaultImageURL string
	tz              *time.Location
	logger          *slog.Logger
}

func New(cfg Config, fetcher Fetcher, logger *slog.Logger) *Source {
	tz := cfg.Timezone
	if tz == nil {
		tz = time.UTC
	}
	return &Source{
		fetch:           fetcher,
		baseURL:         cfg.BaseURL,
		categoryParam:   cfg.CategoryParam,
		defaultImageURL: cfg.DefaultImageURL,
		tz:              tz,
		logger:          logger.With("source", "stuttgart"),
	}
}

// Events returns the enriched events listed for one day and one category.
// An entry that fails calendar resolution is skipped with a logged warning
// and never aborts its siblings. A day without events yields an empty
// slice, not an error.
func (s *Source) Events(ctx context.Context, day time.Time, category string) ([]domain.EnrichedEvent, error) {
	pageURL := s.listingURL(day, category)

	body, err := s.fetch.Get(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse listing url: %w", err)
	}

	entries, err := parseEntries(body, base)
	if err != nil {
		return nil, err
	}

	events := make([]domain.EnrichedEvent, 0, len(entries))
	for _, entry := range entries {
		ev, err := s.resolveCalendarEvent(ctx, entry)
		if err != nil {
			s.logger.Warn("skipping event entry",
				"page", pageURL,
				"error", err,
			)
			continue
		}
		events = append(events, s.enrich(ctx, ev))
	}

	s.logger.Debug("processed listing page",
		"date", day.Format("2006-01-02"),
		"category", category,
		"entries", len(entries),
		"resolved", len(events),
	)

	return events, nil
}

func (s *Source) listingURL(day time.Time, category string) string {
	date := day.Format("2006-01-02")

	q := url.Values{}
	q.Set("form", "eventSearch-1.form")
	q.Set("sp:dateFrom[]", date)
	q.Set("sp:dateTo[]", date)
	q.Set(s.categoryParam, category)
	q.Set("action", "submit")

	return s.baseURL + "?" + q.Encode()
}
