package stuttgart

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"events_rss/internal/domain"
)

const (
	entranceFeeSelector = ".SP-CallToAction__text .SP-Paragraph p"
	descriptionSelector = ".SP-ArticleContent .SP-Text:not(.SP-Text--notice) .SP-Paragraph p"
	exhibitionSelector  = "section.SP-Text.SP-Text--boxed.SP-Grid__full--background.SP-Grid__full--backgroundHighlighted"
)

// enrich augments a CalendarEvent with data scraped from its detail page.
// The page is fetched once; each sub-extraction is independent, so a
// missing node leaves only its own field absent. Without a detail URL no
// network call is made.
func (s *Source) enrich(ctx context.Context, ev domain.CalendarEvent) domain.EnrichedEvent {
	out := domain.EnrichedEvent{
		CalendarEvent: ev,
		MapLink:       MapLink(ev.Location),
	}

	if ev.DetailURL == "" {
		return out
	}

	body, err := s.fetch.Get(ctx, ev.DetailURL)
	if err != nil {
		s.logger.Warn("skipping detail page enrichment",
			"url", ev.DetailURL,
			"error", err,
		)
		return out
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.logger.Warn("failed to parse detail page",
			"url", ev.DetailURL,
			"error", err,
		)
		return out
	}

	out.ImageURL = s.extractImageURL(doc, ev.DetailURL)
	out.EntranceFee = extractEntranceFee(doc)
	out.ExtendedDescription = extractExtendedDescription(doc)
	out.ExhibitionHours = extractExhibitionHours(doc)

	return out
}

// MapLink returns a Google Maps search link for the given location text.
// Identical input yields an identical link; an empty location yields none.
func MapLink(location string) string {
	if location == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(location)
}

// extractImageURL finds the first image inside a picture container. The
// image is accepted only if its URL contains the detail page's filename
// stem, which guards against unrelated decorative images; otherwise the
// configured default applies.
func (s *Source) extractImageURL(doc *goquery.Document, detailURL string) string {
	if src, ok := doc.Find("picture img").First().Attr("src"); ok {
		base, berr := url.Parse(detailURL)
		ref, rerr := url.Parse(src)
		if berr == nil && rerr == nil {
			img := base.ResolveReference(ref).String()
			if stem := pageStem(base.Path); stem != "" && strings.Contains(img, stem) {
				return img
			}
		}
	}
	return s.defaultImage()
}

func pageStem(p string) string {
	name := path.Base(p)
	return strings.TrimSuffix(name, path.Ext(name))
}

func (s *Source) defaultImage() string {
	if s.defaultImageURL == "" {
		return ""
	}
	if u, err := url.Parse(s.defaultImageURL); err != nil || u.Scheme == "" {
		s.logger.Error("default event image URL is not an absolute URL",
			"url", s.defaultImageURL,
		)
	}
	return s.defaultImageURL
}

// extractEntranceFee returns the first text node of the first paragraph
// inside the call-to-action region.
func extractEntranceFee(doc *goquery.Document) string {
	p := doc.Find(entranceFeeSelector).First()
	if p.Length() == 0 {
		return ""
	}
	for n := p.Nodes[0].FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.TextNode {
			return strings.TrimSpace(n.Data)
		}
	}
	return ""
}

// extractExtendedDescription collects all paragraph text in the article
// body outside the call-to-action region. Embedded <br> become newlines,
// paragraphs are trimmed and newline-joined.
func extractExtendedDescription(doc *goquery.Document) string {
	var paragraphs []string
	doc.Find(descriptionSelector).Each(func(_ int, p *goquery.Selection) {
		if p.Closest(".SP-CallToAction__text").Length() > 0 {
			return
		}
		paragraphs = append(paragraphs, strings.TrimSpace(textWithBreaks(p.Nodes[0])))
	})
	return strings.Join(paragraphs, "\n")
}

// extractExhibitionHours returns the raw inner HTML of the first container
// inside the highlighted text region. It is injected verbatim into the
// rendered output, so it must not be re-escaped here.
func extractExhibitionHours(doc *goquery.Document) string {
	div := doc.Find(exhibitionSelector).First().Find("div").First()
	if div.Length() == 0 {
		return ""
	}
	fragment, err := div.Html()
	if err != nil {
		return ""
	}
	return fragment
}

func textWithBreaks(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch {
		case node.Type == html.TextNode:
			b.WriteString(node.Data)
		case node.Type == html.ElementNode && node.Data == "br":
			b.WriteString("\n")
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
