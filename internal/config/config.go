package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Feeds    []FeedConfig   `yaml:"feeds"`
	Output   OutputConfig   `yaml:"output"`
	Notify   NotifyConfig   `yaml:"notify"`
	Schedule ScheduleConfig `yaml:"schedule"`
	LogLevel string         `yaml:"log_level"`
}

// SourceConfig describes the municipal events calendar that is scraped.
type SourceConfig struct {
	BaseURL         string        `yaml:"base_url"`
	CategoryParam   string        `yaml:"category_param"`
	Timezone        string        `yaml:"timezone"`
	HorizonDays     int           `yaml:"horizon_days"`
	DefaultImageURL string        `yaml:"default_event_image_url"`
	Timeout         time.Duration `yaml:"timeout"`
	Retry           RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts    int           `yaml:"max_attempts"`
	InitialBackoff time.Duration `yaml:"initial_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
}

// FeedConfig describes one generated RSS feed. Name is the output file
// name, Category the site's category identifier for the event search.
type FeedConfig struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Category string `yaml:"category"`
}

type OutputConfig struct {
	Directory         string `yaml:"directory"`
	DestinationFolder string `yaml:"destination_folder"`
	EnableMove        bool   `yaml:"enable_move_rss"`
	ChannelLink       string `yaml:"channel_link"`
	Copyright         string `yaml:"copyright"`
}

// NotifyConfig selects how an external feed reader is told about updates.
// Backend is "nextcloud", "amqp" or empty (notification disabled).
type NotifyConfig struct {
	Backend       string          `yaml:"backend"`
	FeedURLPrefix string          `yaml:"feed_url_prefix"`
	Nextcloud     NextcloudConfig `yaml:"nextcloud"`
	AMQP          AMQPConfig      `yaml:"amqp"`
}

type NextcloudConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

type AMQPConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// ScheduleConfig controls periodic regeneration. A zero interval means
// run once and exit.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Source.BaseURL == "" {
		c.Source.BaseURL = "https://www.stuttgart.de/service/veranstaltungen.php"
	}
	if c.Source.CategoryParam == "" {
		c.Source.CategoryParam = "sp:categories[77306][]"
	}
	if c.Source.Timezone == "" {
		c.Source.Timezone = "Europe/Berlin"
	}
	if c.Source.HorizonDays == 0 {
		c.Source.HorizonDays = 7
	}
	if c.Source.Timeout == 0 {
		c.Source.Timeout = 10 * time.Second
	}
	if c.Source.Retry.MaxAttempts == 0 {
		c.Source.Retry.MaxAttempts = 3
	}
	if c.Source.Retry.InitialBackoff == 0 {
		c.Source.Retry.InitialBackoff = 1 * time.Second
	}
	if c.Source.Retry.MaxBackoff == 0 {
		c.Source.Retry.MaxBackoff = 30 * time.Second
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "."
	}
	if c.Output.ChannelLink == "" {
		c.Output.ChannelLink = "https://www.stuttgart.de/service/veranstaltungen.php"
	}
	if c.Output.Copyright == "" {
		c.Output.Copyright = "Copyright 2023, Landeshauptstadt Stuttgart"
	}
	if c.Notify.Nextcloud.Timeout == 0 {
		c.Notify.Nextcloud.Timeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate reports configuration errors that are fatal to the run.
func (c *Config) Validate() error {
	if len(c.Feeds) == 0 {
		return fmt.Errorf("no feeds configured")
	}
	for i, f := range c.Feeds {
		if f.Name == "" || f.Title == "" || f.Category == "" {
			return fmt.Errorf("feed %d: name, title and category are required", i)
		}
	}
	if _, err := time.LoadLocation(c.Source.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Source.Timezone, err)
	}
	if c.Source.HorizonDays < 1 {
		return fmt.Errorf("horizon_days must be at least 1")
	}
	switch c.Notify.Backend {
	case "", "nextcloud", "amqp":
	default:
		return fmt.Errorf("unknown notify backend %q", c.Notify.Backend)
	}
	if c.Notify.Backend != "" && c.Notify.FeedURLPrefix == "" {
		return fmt.Errorf("notify: feed_url_prefix is required when a backend is set")
	}
	return nil
}
