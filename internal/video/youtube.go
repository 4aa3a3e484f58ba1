// Package video finds instructional cooking videos for recipes and fans
// the lookups out with a stagger between requests.
package video

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

const (
	defaultSearchURL = "https://www.googleapis.com/youtube/v3/search"
	watchURLPrefix   = "https://www.youtube.com/watch?v="
)

var _ domain.VideoSearcher = (*YouTube)(nil)

// YouTubeOption configures the YouTube adapter.
type YouTubeOption func(*YouTube)

// WithSearchURL overrides the search endpoint. Used by tests.
func WithSearchURL(u string) YouTubeOption {
	return func(y *YouTube) { y.searchURL = u }
}

// WithHTTPTimeout sets the per-request timeout (default 10s).
func WithHTTPTimeout(d time.Duration) YouTubeOption {
	return func(y *YouTube) { y.http.Timeout = d }
}

// YouTube searches the YouTube Data API for one medium-length video.
type YouTube struct {
	apiKey    string
	searchURL string
	http      *http.Client
	log       *logger.Logger
}

// NewYouTube creates the adapter. An empty apiKey leaves it unavailable.
func NewYouTube(apiKey string, log *logger.Logger, opts ...YouTubeOption) *YouTube {
	y := &YouTube{
		apiKey:    apiKey,
		searchURL: defaultSearchURL,
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
	for _, o := range opts {
		o(y)
	}
	return y
}

// Available reports whether an API key is configured.
func (y *YouTube) Available() bool { return y.apiKey != "" }

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// Search returns a watch URL for the best match of "<query> recipe cooking
// tutorial", or domain.ErrNoResult.
func (y *YouTube) Search(ctx context.Context, query string) (string, error) {
	if !y.Available() {
		return "", fmt.Errorf("video: %w", domain.ErrNoCredential)
	}
	id, err := y.search(ctx, strings.TrimSpace(query)+" recipe cooking tutorial", "medium")
	if err != nil {
		return "", err
	}
	link := watchURLPrefix + id
	y.log.Debug("found video for %q: %s", query, link)
	return link, nil
}

// Check performs a minimal search to verify the API key works.
func (y *YouTube) Check(ctx context.Context) error {
	if !y.Available() {
		return fmt.Errorf("video: %w", domain.ErrNoCredential)
	}
	_, err := y.search(ctx, "test", "")
	if err != nil && !errors.Is(err, domain.ErrNoResult) {
		return err
	}
	return nil
}

func (y *YouTube) search(ctx context.Context, q, duration string) (string, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", q)
	params.Set("type", "video")
	params.Set("maxResults", "1")
	params.Set("order", "relevance")
	if duration != "" {
		params.Set("videoDuration", duration)
	}
	params.Set("key", y.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("video: create request: %w", err)
	}
	resp, err := y.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("video: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("video: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("video: API %s", resp.Status)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("video: unmarshal response: %w", err)
	}
	if len(result.Items) == 0 || result.Items[0].ID.VideoID == "" {
		return "", fmt.Errorf("video: %q: %w", q, domain.ErrNoResult)
	}
	return result.Items[0].ID.VideoID, nil
}
