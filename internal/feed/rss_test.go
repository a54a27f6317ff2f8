package feed

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WriteLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	original := Feed{
		Title:     "Veranstaltungen",
		Link:      "https://www.stuttgart.de/service/veranstaltungen.php",
		Copyright: "Copyright 2023, Landeshauptstadt Stuttgart",
		Items: []Item{
			{
				Title:       "Stadtfest",
				Description: `<div class="event"><h2>Stadtfest</h2><p>Musik &amp; Tanz</p></div>`,
				Link:        "https://www.stuttgart.de/veranstaltungen/stadtfest.php",
				PubDate:     "Sat, 01 Jun 2024 16:00:00 GMT",
			},
			{
				Title:   "Lesung",
				PubDate: "Sun, 02 Jun 2024 17:00:00 GMT",
			},
		},
	}

	require.NoError(t, store.Write("events.rss", original))

	loaded, err := store.Load("events.rss")
	require.NoError(t, err)

	assert.Equal(t, original, loaded)
}

func TestStore_WrittenFileIsRSS2(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	require.NoError(t, store.Write("events.rss", Feed{Title: "t"}))

	data, err := os.ReadFile(filepath.Join(dir, "events.rss"))
	require.NoError(t, err)

	content := string(data)
	assert.True(t, strings.HasPrefix(content, "<?xml"))
	assert.Contains(t, content, `<rss version="2.0">`)
	assert.Contains(t, content, "<channel>")
}

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore(t.TempDir())

	_, err := store.Load("missing.rss")

	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestStore_CountItems(t *testing.T) {
	store := NewStore(t.TempDir())

	f := Feed{Title: "t"}
	for _, title := range []string{"a", "b", "c"} {
		f.Items = append(f.Items, Item{Title: title})
	}
	require.NoError(t, store.Write("events.rss", f))

	n, err := store.CountItems("events.rss")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStore_WriteToMissingDirectoryFails(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope"))

	err := store.Write("events.rss", Feed{Title: "t"})

	assert.Error(t, err)
}
