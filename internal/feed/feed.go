// Package feed holds the persisted RSS 2.0 feed document: the only entity
// with cross-run lifetime. The file written at the end of a run is the
// deduplication source of the next one.
package feed

import "time"

// Item is one feed entry. The identity key for deduplication is the pair
// (Title, PubDate). Titles alone are not unique, so two distinct events
// with the same name and coincidentally identical start instants collide;
// this matches the upstream behavior and is accepted.
type Item struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
}

// Key returns the item's identity key.
func (i Item) Key() [2]string {
	return [2]string{i.Title, i.PubDate}
}

// Feed is an ordered feed document. Insertion order is document order on
// disk; new items are appended, never reordered or pruned. No two items
// share an identity key.
type Feed struct {
	Title     string
	Link      string
	Copyright string
	Items     []Item
}

// Merge returns the feed with item appended, unless an item with the same
// identity key already exists, in which case the feed is returned
// unchanged and inserted is false. The input feed is not mutated.
func Merge(f Feed, item Item) (merged Feed, inserted bool) {
	key := item.Key()
	for _, existing := range f.Items {
		if existing.Key() == key {
			return f, false
		}
	}

	merged = f
	merged.Items = append(f.Items[:len(f.Items):len(f.Items)], item)
	return merged, true
}

// PubDate formats an event start instant in the RFC 822 / GMT form the
// RSS wire format expects.
func PubDate(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
}
