package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amaumene/popcornarr/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// Item is a single free-text torrent listing from a paged source
type Item struct {
	Title       string `json:"title"`
	Magnet      string `json:"magnet"`
	TorrentLink string `json:"torrentLink"`
	Seeds       int    `json:"seeds"`
	Peers       int    `json:"peers"`
	Leechs      int    `json:"leechs"`
	Size        int64  `json:"size"`
	FileSize    string `json:"filesize"`
	Language    string `json:"language"`
}

// DownloadURL prefers the magnet link over the torrent file link
func (i Item) DownloadURL() string {
	if i.Magnet != "" {
		return i.Magnet
	}
	return i.TorrentLink
}

// SearchResponse covers the three known paged response shapes. Exactly one
// of Results, Data or Torrents is populated per source.
type SearchResponse struct {
	// Shape 1: {results, total_pages}
	Results    []Item `json:"results"`
	TotalPages int    `json:"total_pages"`

	// Shape 2: {data: {movie_count, movies}}
	Data *YtsData `json:"data"`

	// Shape 3: {torrents, totalRecordCount, queryRecordCount}
	Torrents         []Item `json:"torrents"`
	TotalRecordCount int    `json:"totalRecordCount"`
	QueryRecordCount int    `json:"queryRecordCount"`
}

// Items returns the free-text listings regardless of response shape
func (r *SearchResponse) Items() []Item {
	if len(r.Results) > 0 {
		return r.Results
	}
	return r.Torrents
}

// YtsData is the payload of the structured movie-listing shape
type YtsData struct {
	MovieCount int        `json:"movie_count"`
	Movies     []YtsMovie `json:"movies"`
}

// YtsMovie is one structured movie entry with its torrents already split
// out per quality
type YtsMovie struct {
	ImdbCode string       `json:"imdb_code"`
	Title    string       `json:"title"`
	Slug     string       `json:"slug"`
	Year     int          `json:"year"`
	Language string       `json:"language"`
	Torrents []YtsTorrent `json:"torrents"`
}

// YtsTorrent is one quality entry of a structured movie
type YtsTorrent struct {
	URL       string `json:"url"`
	Hash      string `json:"hash"`
	Quality   string `json:"quality"`
	Seeds     int    `json:"seeds"`
	Peers     int    `json:"peers"`
	Size      string `json:"size"`
	SizeBytes int64  `json:"size_bytes"`
}

// Client wraps the HTTP surface of one paged or bulk source adapter
type Client struct {
	name       string
	baseURL    string
	query      map[string]string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient creates a client for one source catalog entry
func NewClient(src config.Source, logger *logrus.Logger) (*Client, error) {
	if src.BaseURL == "" {
		return nil, fmt.Errorf("source %s: base URL is required", src.Name)
	}

	return &Client{
		name:       src.Name,
		baseURL:    src.BaseURL,
		query:      src.Query,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// Name returns the source name the client was built for
func (c *Client) Name() string {
	return c.name
}

// Search fetches one result page
func (c *Client) Search(ctx context.Context, page int) (*SearchResponse, error) {
	apiURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid source URL: %w", err)
	}

	params := url.Values{}
	for key, value := range c.query {
		params.Set(key, value)
	}
	params.Set("page", strconv.Itoa(page))
	apiURL.RawQuery = params.Encode()

	var response SearchResponse
	if err := c.getJSON(ctx, apiURL.String(), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// getJSON performs a GET with exponential backoff on transient failures
func (c *Client) getJSON(ctx context.Context, rawURL string, result interface{}) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("source returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("source returned status %d", resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("request to %s failed: %w", c.name, err)
	}
	return nil
}
