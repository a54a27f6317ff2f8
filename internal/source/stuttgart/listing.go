package stuttgart

import (
	"bytes"
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"events_rss/internal/domain"
)

// Structural signature of an event teaser on the listing page.
const teaserSelector = "article.SP-Teaser.SP-Grid__full.SP-Teaser--event.SP-Teaser--hasLinks.SP-Teaser--textual"

// entryRef is a handle to one teaser fragment plus the listing page URL
// used to resolve relative links. Discarded once the entry is resolved.
type entryRef struct {
	sel     *goquery.Selection
	pageURL *url.URL
}

func parseEntries(body []byte, pageURL *url.URL) ([]entryRef, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, &domain.ParseError{URL: pageURL.String(), Err: err}
	}

	var entries []entryRef
	doc.Find(teaserSelector).Each(func(_ int, sel *goquery.Selection) {
		entries = append(entries, entryRef{sel: sel, pageURL: pageURL})
	})

	return entries, nil
}
