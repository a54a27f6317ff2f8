package stuttgart

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	ical "github.com/arran4/golang-ical"

	"events_rss/internal/domain"
)

// Selector of the teaser link that points at the per-event iCalendar file.
const calendarLinkSelector = ".SP-Teaser__links .SP-Link.SP-Iconized--left"

// resolveCalendarEvent turns one listing entry into a CalendarEvent by
// following the entry's calendar link. Any failure skips the entry only.
func (s *Source) resolveCalendarEvent(ctx context.Context, entry entryRef) (domain.CalendarEvent, error) {
	href, ok := entry.sel.Find(calendarLinkSelector).First().Attr("href")
	if !ok {
		return domain.CalendarEvent{}, domain.ErrMissingCalendarLink
	}

	ref, err := url.Parse(href)
	if err != nil {
		return domain.CalendarEvent{}, &domain.ParseError{URL: entry.pageURL.String(), Err: err}
	}

	calURL := entry.pageURL.ResolveReference(ref).String()
	if decoded, err := url.QueryUnescape(calURL); err == nil {
		calURL = decoded
	}

	body, err := s.fetch.Get(ctx, calURL)
	if err != nil {
		return domain.CalendarEvent{}, err
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return domain.CalendarEvent{}, &domain.ParseError{URL: calURL, Err: err}
	}

	events := cal.Events()
	if len(events) == 0 {
		return domain.CalendarEvent{}, fmt.Errorf("%s: %w", calURL, domain.ErrNoCalendarEvent)
	}

	// One event per file is expected; only the first is used.
	return s.eventFromVEvent(events[0], calURL)
}

func (s *Source) eventFromVEvent(ve *ical.VEvent, calURL string) (domain.CalendarEvent, error) {
	ev := domain.CalendarEvent{CalendarURL: calURL}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		ev.Title = p.Value
	}
	if ev.Title == "" {
		return ev, &domain.ParseError{URL: calURL, Err: errors.New("event has no summary")}
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return ev, &domain.ParseError{URL: calURL, Err: fmt.Errorf("event start: %w", err)}
	}
	ev.Start = start.In(s.tz)

	if end, err := ve.GetEndAt(); err == nil {
		ev.End = end.In(s.tz)
	} else {
		ev.End = ev.Start
	}

	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		ev.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		ev.Description = p.Value
	}
	// Raw property names to avoid depending on constant variants.
	if p := ve.GetProperty(ical.ComponentProperty("URL")); p != nil {
		ev.DetailURL = p.Value
	}
	if p := ve.GetProperty(ical.ComponentProperty("CATEGORIES")); p != nil {
		for _, c := range strings.Split(p.Value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				ev.Categories = append(ev.Categories, c)
			}
		}
	}

	return ev, nil
}
