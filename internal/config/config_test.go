package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
feeds:
  - name: events.rss
    title: Veranstaltungen
    category: "79078"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://www.stuttgart.de/service/veranstaltungen.php", cfg.Source.BaseURL)
	assert.Equal(t, "sp:categories[77306][]", cfg.Source.CategoryParam)
	assert.Equal(t, "Europe/Berlin", cfg.Source.Timezone)
	assert.Equal(t, 7, cfg.Source.HorizonDays)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 3, cfg.Source.Retry.MaxAttempts)
	assert.Equal(t, 1*time.Second, cfg.Source.Retry.InitialBackoff)
	assert.Equal(t, 30*time.Second, cfg.Source.Retry.MaxBackoff)
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, "Copyright 2023, Landeshauptstadt Stuttgart", cfg.Output.Copyright)
	assert.Equal(t, "info", cfg.LogLevel)

	require.NoError(t, cfg.Validate())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("EVENTS_DEST", "/srv/www/feeds")

	path := writeConfig(t, `
output:
  destination_folder: ${EVENTS_DEST}
feeds:
  - name: events.rss
    title: Veranstaltungen
    category: "79078"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www/feeds", cfg.Output.DestinationFolder)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{
			Feeds: []FeedConfig{
				{Name: "events.rss", Title: "Veranstaltungen", Category: "79078"},
			},
		}
		cfg.setDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty feed list",
			mutate:  func(c *Config) { c.Feeds = nil },
			wantErr: "no feeds configured",
		},
		{
			name:    "feed missing category",
			mutate:  func(c *Config) { c.Feeds[0].Category = "" },
			wantErr: "name, title and category are required",
		},
		{
			name:    "feed missing title",
			mutate:  func(c *Config) { c.Feeds[0].Title = "" },
			wantErr: "name, title and category are required",
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Source.Timezone = "Mars/Olympus" },
			wantErr: "invalid timezone",
		},
		{
			name:    "unknown notify backend",
			mutate:  func(c *Config) { c.Notify.Backend = "carrier-pigeon" },
			wantErr: "unknown notify backend",
		},
		{
			name:    "notify backend without prefix",
			mutate:  func(c *Config) { c.Notify.Backend = "nextcloud" },
			wantErr: "feed_url_prefix is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
