package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"events_rss/internal/domain"
	"events_rss/internal/feed"
)

// EventSource yields the enriched events listed for one day and category.
type EventSource interface {
	Events(ctx context.Context, day time.Time, category string) ([]domain.EnrichedEvent, error)
}

// Renderer produces the HTML body of a feed item.
type Renderer interface {
	Render(ev domain.EnrichedEvent) (string, error)
}

// FeedStore persists feed documents.
type FeedStore interface {
	Load(name string) (feed.Feed, error)
	Write(name string, f feed.Feed) error
	CountItems(name string) (int, error)
}

// Relocator moves a finished feed file to its destination and returns the
// new path, or an empty string when relocation is disabled.
type Relocator interface {
	Move(name string) (string, error)
}

// Notifier tells an external feed reader that feeds under the given URL
// prefix have been updated.
type Notifier interface {
	NotifyFeedUpdated(ctx context.Context, feedURLPrefix string) error
}
