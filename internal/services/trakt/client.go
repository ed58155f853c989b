package trakt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/popcornarr/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.trakt.tv"
	apiVersion     = "2"

	cacheTTL = 6 * time.Hour
)

// ErrNotFound is returned when the metadata service does not know a slug.
// Drafts hitting this are discarded, never persisted.
var ErrNotFound = fmt.Errorf("trakt: not found")

// Client handles communication with the Trakt API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	logger     *logrus.Logger
}

// NewClient creates a new Trakt API client
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.TraktAPIKey == "" {
		return nil, fmt.Errorf("trakt API key is required")
	}

	return &Client{
		apiKey:     cfg.TraktAPIKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache.New(cacheTTL, 2*cacheTTL),
		logger:     logger,
	}, nil
}

// IDs carries the external identifiers of a summary
type IDs struct {
	Trakt int    `json:"trakt"`
	Slug  string `json:"slug"`
	Imdb  string `json:"imdb"`
	Tmdb  int    `json:"tmdb"`
	Tvdb  int    `json:"tvdb"`
}

// RatingBlock is the vote payload shared by both summary kinds
type RatingBlock struct {
	Rating float64 `json:"rating"`
	Votes  int     `json:"votes"`
}

// MovieSummary is the canonical metadata for one film
type MovieSummary struct {
	Title         string   `json:"title"`
	Year          int      `json:"year"`
	IDs           IDs      `json:"ids"`
	Overview      string   `json:"overview"`
	Runtime       int      `json:"runtime"`
	Trailer       string   `json:"trailer"`
	Certification string   `json:"certification"`
	Released      string   `json:"released"`
	Language      string   `json:"language"`
	Genres        []string `json:"genres"`
	RatingBlock
}

// Airs is the broadcast slot of a show
type Airs struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// ShowSummary is the canonical metadata for one series
type ShowSummary struct {
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	IDs      IDs      `json:"ids"`
	Overview string   `json:"overview"`
	Runtime  int      `json:"runtime"`
	Country  string   `json:"country"`
	Network  string   `json:"network"`
	Airs     Airs     `json:"airs"`
	Status   string   `json:"status"`
	Genres   []string `json:"genres"`
	RatingBlock
}

// EpisodeMeta is the canonical metadata for one episode
type EpisodeMeta struct {
	Season     int    `json:"season"`
	Number     int    `json:"number"`
	Title      string `json:"title"`
	Overview   string `json:"overview"`
	FirstAired string `json:"first_aired"`
	IDs        IDs    `json:"ids"`
}

// MovieSummary resolves the canonical metadata for a movie slug
func (c *Client) MovieSummary(ctx context.Context, slug string) (*MovieSummary, error) {
	cacheKey := "movie:" + slug
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(*MovieSummary), nil
	}

	var summary MovieSummary
	path := fmt.Sprintf("/movies/%s?extended=full", slug)
	if err := c.doRequest(ctx, path, &summary); err != nil {
		return nil, err
	}

	if err := verifyMatch(slug, summary.IDs.Slug); err != nil {
		return nil, err
	}
	if summary.IDs.Imdb == "" {
		return nil, ErrNotFound
	}

	c.cache.Set(cacheKey, &summary, cache.DefaultExpiration)
	return &summary, nil
}

// ShowSummary resolves the canonical metadata for a show slug
func (c *Client) ShowSummary(ctx context.Context, slug string) (*ShowSummary, error) {
	cacheKey := "show:" + slug
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.(*ShowSummary), nil
	}

	var summary ShowSummary
	path := fmt.Sprintf("/shows/%s?extended=full", slug)
	if err := c.doRequest(ctx, path, &summary); err != nil {
		return nil, err
	}

	if err := verifyMatch(slug, summary.IDs.Slug); err != nil {
		return nil, err
	}
	if summary.IDs.Imdb == "" {
		return nil, ErrNotFound
	}

	c.cache.Set(cacheKey, &summary, cache.DefaultExpiration)
	return &summary, nil
}

// ShowEpisodes resolves the episode metadata of every season of a show
func (c *Client) ShowEpisodes(ctx context.Context, slug string) ([]EpisodeMeta, error) {
	cacheKey := "episodes:" + slug
	if cached, found := c.cache.Get(cacheKey); found {
		return cached.([]EpisodeMeta), nil
	}

	var seasons []struct {
		Number   int           `json:"number"`
		Episodes []EpisodeMeta `json:"episodes"`
	}
	path := fmt.Sprintf("/shows/%s/seasons?extended=episodes,full", slug)
	if err := c.doRequest(ctx, path, &seasons); err != nil {
		return nil, err
	}

	var episodes []EpisodeMeta
	for _, season := range seasons {
		episodes = append(episodes, season.Episodes...)
	}

	c.cache.Set(cacheKey, episodes, cache.DefaultExpiration)
	return episodes, nil
}

// WatchingCount returns the number of users currently watching a title,
// zero when the lookup fails for any reason.
func (c *Client) WatchingCount(ctx context.Context, kind, slug string) int {
	var watchers []json.RawMessage
	path := fmt.Sprintf("/%ss/%s/watching", kind, slug)
	if err := c.doRequest(ctx, path, &watchers); err != nil {
		c.logger.WithError(err).WithField("slug", slug).Debug("Failed to get watching count")
		return 0
	}
	return len(watchers)
}

// verifyMatch rejects summaries whose canonical slug is too far from the
// requested one. Trakt resolves loose slugs aggressively; without this gate
// a mangled source title can be enriched into an unrelated document.
func verifyMatch(requested, resolved string) error {
	if resolved == "" || requested == resolved {
		if resolved == "" {
			return ErrNotFound
		}
		return nil
	}
	distance := levenshtein.ComputeDistance(requested, resolved)
	if distance > len(requested)/2 {
		return fmt.Errorf("%w: slug %q resolved to %q", ErrNotFound, requested, resolved)
	}
	return nil
}

// doRequest performs a GET against the Trakt API with retry on transient
// failures
func (c *Client) doRequest(ctx context.Context, path string, result interface{}) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("trakt-api-version", apiVersion)
		req.Header.Set("trakt-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("trakt returned status %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(fmt.Errorf("trakt returned status %d", resp.StatusCode))
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode trakt response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}
