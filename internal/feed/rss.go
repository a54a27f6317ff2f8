package feed

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title     string `xml:"title"`
	Copyright string `xml:"copyright"`
	Link      string `xml:"link"`
	Items     []Item `xml:"item"`
}

// Store reads and writes feed documents under a base directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the on-disk location of the named feed.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Load reads an existing feed document. A missing file is reported via
// fs.ErrNotExist so callers can start a fresh feed.
func (s *Store) Load(name string) (Feed, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return Feed{}, fmt.Errorf("read feed %s: %w", name, err)
	}

	var doc rssDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Feed{}, fmt.Errorf("parse feed %s: %w", name, err)
	}

	return Feed{
		Title:     doc.Channel.Title,
		Link:      doc.Channel.Link,
		Copyright: doc.Channel.Copyright,
		Items:     doc.Channel.Items,
	}, nil
}

// Write serializes the feed and overwrites any prior file at that path.
func (s *Store) Write(name string, f Feed) error {
	doc := rssDoc{
		Version: "2.0",
		Channel: channel{
			Title:     f.Title,
			Copyright: f.Copyright,
			Link:      f.Link,
			Items:     f.Items,
		},
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal feed %s: %w", name, err)
	}

	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')

	if err := os.WriteFile(s.Path(name), out, 0o644); err != nil {
		return fmt.Errorf("write feed %s: %w", name, err)
	}
	return nil
}

// CountItems reports the number of items in the written feed file.
func (s *Store) CountItems(name string) (int, error) {
	f, err := s.Load(name)
	if err != nil {
		return 0, err
	}
	return len(f.Items), nil
}
