package domain

import "time"

// FeedStats holds statistics about the generation of a single feed.
type FeedStats struct {
	Feed       string
	Resolved   int
	Inserted   int
	Duplicates int
	Errors     int
	Duration   time.Duration
}
