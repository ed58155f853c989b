package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/amaumene/popcornarr/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	tmdbBaseURL  = "https://api.themoviedb.org/3"
	tmdbImageURL = "https://image.tmdb.org/t/p/w500"
)

// TMDBClient is the second-ranked artwork provider. TMDB has no banner
// art, so the poster fills that slot.
type TMDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewTMDBClient creates a TMDB client
func NewTMDBClient(apiKey string, logger *logrus.Logger) *TMDBClient {
	return &TMDBClient{
		apiKey:     apiKey,
		baseURL:    tmdbBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Name identifies the provider in logs
func (c *TMDBClient) Name() string {
	return "tmdb"
}

type tmdbPayload struct {
	BackdropPath string `json:"backdrop_path"`
	PosterPath   string `json:"poster_path"`
}

// MovieImages fetches movie artwork keyed by TMDB ID
func (c *TMDBClient) MovieImages(ctx context.Context, ids IDs) (models.Images, error) {
	return c.fetch(ctx, ids, "movie")
}

// ShowImages fetches show artwork keyed by TMDB ID
func (c *TMDBClient) ShowImages(ctx context.Context, ids IDs) (models.Images, error) {
	return c.fetch(ctx, ids, "tv")
}

func (c *TMDBClient) fetch(ctx context.Context, ids IDs, kind string) (models.Images, error) {
	if ids.Tmdb == 0 {
		return models.Images{}, fmt.Errorf("tmdb: no tmdb id")
	}

	url := fmt.Sprintf("%s/%s/%d?api_key=%s", c.baseURL, kind, ids.Tmdb, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Images{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Images{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Images{}, fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}

	var payload tmdbPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Images{}, err
	}

	poster := ""
	if payload.PosterPath != "" {
		poster = tmdbImageURL + payload.PosterPath
	}
	fanart := ""
	if payload.BackdropPath != "" {
		fanart = tmdbImageURL + payload.BackdropPath
	}

	return models.Images{
		Banner: orPlaceholder(poster),
		Fanart: orPlaceholder(fanart),
		Poster: orPlaceholder(poster),
	}, nil
}
