package stuttgart

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingBase(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse("https://www.stuttgart.de/service/veranstaltungen.php?form=eventSearch-1.form")
	require.NoError(t, err)
	return u
}

func TestParseEntries_FindsEventTeasers(t *testing.T) {
	page := `<html><body>
` + teaserWithCalendarLink("/ical/a.ics") + `
` + teaserWithCalendarLink("/ical/b.ics") + `
</body></html>`

	entries, err := parseEntries([]byte(page), listingBase(t))

	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestParseEntries_IgnoresOtherTeasers(t *testing.T) {
	// Same element but without the event modifier classes.
	page := `<html><body>
<article class="SP-Teaser SP-Grid__full SP-Teaser--textual">
  <div class="SP-Teaser__links"><a class="SP-Link SP-Iconized--left" href="/ical/x.ics">iCal</a></div>
</article>
</body></html>`

	entries, err := parseEntries([]byte(page), listingBase(t))

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParseEntries_EmptyPage(t *testing.T) {
	entries, err := parseEntries([]byte("<html><body></body></html>"), listingBase(t))

	require.NoError(t, err)
	assert.Empty(t, entries)
}
