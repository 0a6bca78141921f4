// Package youtube is a minimal Data API v3 client covering the operations
// the ingestion pipeline needs: channel lookup, playlist and playlist-item
// listing, batched video lookup, and comment-thread listing.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the production Data API endpoint.
	DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

	// videoBatchSize is the API's ceiling on IDs per videos.list call.
	videoBatchSize = 50
)

// API defines the operations the ingestion pipeline consumes.
type API interface {
	// GetChannel fetches a single channel record, ErrNotFound if absent.
	GetChannel(ctx context.Context, channelID string) (*Channel, error)

	// UploadsPlaylistID resolves the channel's implicit uploads playlist.
	UploadsPlaylistID(ctx context.Context, channelID string) (string, error)

	// ListPlaylists drains all playlists owned by a channel.
	ListPlaylists(ctx context.Context, channelID string) ([]Playlist, error)

	// ListPlaylistItems drains all entries of a playlist.
	ListPlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error)

	// GetVideos batch-fetches full video records for the given IDs.
	GetVideos(ctx context.Context, videoIDs []string) ([]Video, error)

	// ListCommentThreads lists top-level comment threads for a video,
	// capped at max items (0 = unbounded). A video whose comments are
	// gone or disabled yields an empty slice, not an error.
	ListCommentThreads(ctx context.Context, videoID string, max int) ([]CommentThread, error)
}

// Config holds configuration for the API client.
type Config struct {
	// APIKey authenticates every request.
	APIKey string
	// BaseURL is the API root, overridable for tests.
	BaseURL string
	// PageSize is the maxResults sent per page request.
	PageSize int
	// RateLimit is the maximum requests per second.
	RateLimit float64
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
	// MaxRetries is the retry budget for transient failures.
	MaxRetries int
}

// DefaultConfig returns default client configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		PageSize:   50,
		RateLimit:  5,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
	}
}

// Client talks to the Data API over HTTP with rate limiting and bounded
// retries. It is safe for concurrent use.
type Client struct {
	client  *http.Client
	limiter *rate.Limiter
	config  *Config
}

var _ API = (*Client)(nil)

// NewClient creates a new API client from the given configuration.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		config:  cfg,
	}, nil
}

// GetChannel fetches one channel with snippet, statistics and contentDetails.
func (c *Client) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	params := url.Values{}
	params.Set("part", "snippet,statistics,contentDetails")
	params.Set("id", channelID)

	var resp channelListResponse
	if err := c.getJSON(ctx, "/channels", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}
	return &resp.Items[0], nil
}

// UploadsPlaylistID resolves the implicit uploads playlist of a channel.
func (c *Client) UploadsPlaylistID(ctx context.Context, channelID string) (string, error) {
	ch, err := c.GetChannel(ctx, channelID)
	if err != nil {
		return "", err
	}
	uploads := ch.ContentDetails.RelatedPlaylists.Uploads
	if uploads == "" {
		return "", fmt.Errorf("channel %s has no uploads playlist: %w", channelID, ErrNotFound)
	}
	return uploads, nil
}

// ListPlaylists drains all playlists owned by a channel.
func (c *Client) ListPlaylists(ctx context.Context, channelID string) ([]Playlist, error) {
	return drainPages(ctx, func(ctx context.Context, pageToken string) ([]Playlist, string, error) {
		params := url.Values{}
		params.Set("part", "snippet,contentDetails")
		params.Set("channelId", channelID)
		params.Set("maxResults", strconv.Itoa(c.config.PageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp playlistListResponse
		if err := c.getJSON(ctx, "/playlists", params, &resp); err != nil {
			return nil, "", err
		}
		return resp.Items, resp.NextPageToken, nil
	}, 0)
}

// ListPlaylistItems drains all entries of a playlist.
func (c *Client) ListPlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	return drainPages(ctx, func(ctx context.Context, pageToken string) ([]PlaylistItem, string, error) {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(c.config.PageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp playlistItemListResponse
		if err := c.getJSON(ctx, "/playlistItems", params, &resp); err != nil {
			return nil, "", err
		}
		return resp.Items, resp.NextPageToken, nil
	}, 0)
}

// GetVideos batch-fetches full video records, chunking at the API's
// 50-IDs-per-call ceiling.
func (c *Client) GetVideos(ctx context.Context, videoIDs []string) ([]Video, error) {
	var all []Video
	for start := 0; start < len(videoIDs); start += videoBatchSize {
		end := start + videoBatchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		params := url.Values{}
		params.Set("part", "snippet,contentDetails,statistics")
		params.Set("id", strings.Join(videoIDs[start:end], ","))

		var resp videoListResponse
		if err := c.getJSON(ctx, "/videos", params, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Items...)
	}
	return all, nil
}

// ListCommentThreads lists top-level comment threads for a video, following
// continuation tokens up to max items. The API answers 404 for deleted
// videos and 403 for disabled comments; both mean "zero comments here",
// not a pipeline failure.
func (c *Client) ListCommentThreads(ctx context.Context, videoID string, max int) ([]CommentThread, error) {
	threads, err := drainPages(ctx, func(ctx context.Context, pageToken string) ([]CommentThread, string, error) {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("videoId", videoID)
		params.Set("maxResults", strconv.Itoa(c.config.PageSize))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp commentThreadListResponse
		if err := c.getJSON(ctx, "/commentThreads", params, &resp); err != nil {
			return nil, "", err
		}
		return resp.Items, resp.NextPageToken, nil
	}, max)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && (te.StatusCode == http.StatusNotFound || te.StatusCode == http.StatusForbidden) {
			log.Debug().Str("videoId", videoID).Int("status", te.StatusCode).Msg("No comments available for video")
			return nil, nil
		}
		return nil, err
	}
	return threads, nil
}

// getJSON performs a rate-limited GET with bounded retry and decodes the
// JSON payload. Client-side (4xx) statuses are returned immediately;
// network failures and 5xx statuses are retried with exponential backoff.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		err := c.get(ctx, path, params, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var te *TransportError
		if errors.As(err, &te) && te.StatusCode >= 400 && te.StatusCode < 500 {
			return err
		}

		if attempt < c.config.MaxRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

// get performs a single HTTP request against the API.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("key", c.config.APIKey)
	requestURL := c.config.BaseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request error: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Int("status", resp.StatusCode).
		Str("path", path).
		Msg("YouTube API response")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &TransportError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response error: %w", err)
	}
	return nil
}
