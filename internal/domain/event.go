package domain

import "time"

// CalendarEvent is the canonical event record resolved from a per-event
// iCalendar file. Start and End are converted to the configured display
// timezone. Values are immutable once constructed.
type CalendarEvent struct {
	Title       string
	Start       time.Time
	End         time.Time
	Location    string
	Description string
	DetailURL   string
	CalendarURL string
	Categories  []string // display order preserved
}

// EnrichedEvent is a CalendarEvent augmented with data scraped from the
// event's own detail page. Every enrichment field is optional; an empty
// string means the field is absent.
type EnrichedEvent struct {
	CalendarEvent

	ImageURL            string
	MapLink             string
	EntranceFee         string
	ExtendedDescription string // paragraphs joined with newlines
	ExhibitionHours     string // raw HTML fragment, injected unescaped
}
