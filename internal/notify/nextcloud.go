package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const newsAPIBase = "/index.php/apps/news/api/v1-3"

// Nextcloud refreshes matching Nextcloud News subscriptions over the News
// API. This replaces the occ-based shell invocation inside the reader's
// container: the user's feeds are listed, those whose URL starts with the
// configured prefix are marked read and re-fetched.
type Nextcloud struct {
	http   *resty.Client
	userID string
	logger *slog.Logger
}

type NextcloudConfig struct {
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
}

func NewNextcloud(cfg NextcloudConfig, logger *slog.Logger) *Nextcloud {
	http := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetBasicAuth(cfg.Username, cfg.Password).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Nextcloud{
		http:   http,
		userID: cfg.Username,
		logger: logger,
	}
}

type newsFeed struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

type newsFeedList struct {
	Feeds []newsFeed `json:"feeds"`
}

func (n *Nextcloud) NotifyFeedUpdated(ctx context.Context, feedURLPrefix string) error {
	if feedURLPrefix == "" {
		return fmt.Errorf("feed URL prefix is empty")
	}

	var list newsFeedList
	res, err := n.http.R().
		SetContext(ctx).
		SetResult(&list).
		Get(newsAPIBase + "/feeds")
	if err != nil {
		return fmt.Errorf("list feeds: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("list feeds: unexpected status %d", res.StatusCode())
	}

	var updated int
	for _, f := range list.Feeds {
		if !strings.HasPrefix(f.URL, feedURLPrefix) {
			continue
		}
		if err := n.updateFeed(ctx, f.ID); err != nil {
			n.logger.Warn("failed to update nextcloud feed",
				"feed_id", f.ID,
				"url", f.URL,
				"error", err,
			)
			continue
		}
		updated++
	}

	n.logger.Info("updated nextcloud news feeds",
		"matched", updated,
		"feed_url_prefix", feedURLPrefix,
	)

	return nil
}

func (n *Nextcloud) updateFeed(ctx context.Context, feedID int64) error {
	res, err := n.http.R().
		SetContext(ctx).
		Put(fmt.Sprintf("%s/feeds/%d/read", newsAPIBase, feedID))
	if err != nil {
		return fmt.Errorf("mark feed read: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("mark feed read: unexpected status %d", res.StatusCode())
	}

	res, err = n.http.R().
		SetContext(ctx).
		SetQueryParam("userId", n.userID).
		SetQueryParam("feedId", fmt.Sprintf("%d", feedID)).
		Get(newsAPIBase + "/feeds/update")
	if err != nil {
		return fmt.Errorf("trigger feed update: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("trigger feed update: unexpected status %d", res.StatusCode())
	}

	return nil
}
