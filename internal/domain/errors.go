package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCalendarLink marks a listing entry without a calendar link.
	ErrMissingCalendarLink = errors.New("entry has no calendar link")
	// ErrNoCalendarEvent marks a calendar file without any event component.
	ErrNoCalendarEvent = errors.New("calendar file contains no event")
)

// FetchError is a transport failure, timeout or non-success status. It is
// isolated to the current entry or page and never aborts the run.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError is a malformed document or a missing expected node. It is
// isolated to the current entry.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
