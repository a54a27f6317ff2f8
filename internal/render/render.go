// Package render turns an enriched event into the self-contained HTML
// fragment used as the feed item body.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"events_rss/internal/domain"
)

//go:embed template.html
var templateHTML string

// Renderer renders events through a fixed template. Free-text fields are
// auto-escaped by html/template; the exhibition hours fragment is the only
// field inserted unescaped, because it is pre-extracted markup.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("event").Parse(templateHTML)
	if err != nil {
		return nil, fmt.Errorf("parse event template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type templateData struct {
	Title               string
	Date                string
	StartTime           string
	EndTime             string
	Location            string
	MapLink             string
	Description         string
	ExtendedDescription string
	EntranceFee         string
	ExhibitionHours     template.HTML
	ImageURL            string
	Tags                string
	DetailURL           string
	CalendarURL         string
}

func (r *Renderer) Render(ev domain.EnrichedEvent) (string, error) {
	data := templateData{
		Title:               ev.Title,
		Date:                ev.Start.Format("Mon, 02 Jan 2006"),
		StartTime:           ev.Start.Format("15:04") + " Uhr",
		EndTime:             ev.End.Format("15:04") + " Uhr",
		Location:            ev.Location,
		MapLink:             ev.MapLink,
		Description:         ev.Description,
		ExtendedDescription: ev.ExtendedDescription,
		EntranceFee:         ev.EntranceFee,
		ExhibitionHours:     template.HTML(ev.ExhibitionHours),
		ImageURL:            ev.ImageURL,
		Tags:                strings.Join(ev.Categories, ", "),
		DetailURL:           ev.DetailURL,
		CalendarURL:         ev.CalendarURL,
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render event %q: %w", ev.Title, err)
	}
	return buf.String(), nil
}
