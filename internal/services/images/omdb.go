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

const omdbBaseURL = "https://www.omdbapi.com"

// OMDBClient is the last-ranked artwork provider. OMDB only carries a
// poster, which fills all three slots when present.
type OMDBClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewOMDBClient creates an OMDB client
func NewOMDBClient(apiKey string, logger *logrus.Logger) *OMDBClient {
	return &OMDBClient{
		apiKey:     apiKey,
		baseURL:    omdbBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Name identifies the provider in logs
func (c *OMDBClient) Name() string {
	return "omdb"
}

// MovieImages fetches the movie poster keyed by IMDB ID
func (c *OMDBClient) MovieImages(ctx context.Context, ids IDs) (models.Images, error) {
	return c.fetch(ctx, ids)
}

// ShowImages fetches the show poster keyed by IMDB ID
func (c *OMDBClient) ShowImages(ctx context.Context, ids IDs) (models.Images, error) {
	return c.fetch(ctx, ids)
}

func (c *OMDBClient) fetch(ctx context.Context, ids IDs) (models.Images, error) {
	if ids.Imdb == "" {
		return models.Images{}, fmt.Errorf("omdb: no imdb id")
	}

	url := fmt.Sprintf("%s/?i=%s&apikey=%s", c.baseURL, ids.Imdb, c.apiKey)
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
		return models.Images{}, fmt.Errorf("omdb returned status %d", resp.StatusCode)
	}

	var payload struct {
		Poster string `json:"Poster"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Images{}, err
	}
	if payload.Poster == "N/A" {
		payload.Poster = ""
	}

	return models.Images{
		Banner: orPlaceholder(payload.Poster),
		Fanart: orPlaceholder(payload.Poster),
		Poster: orPlaceholder(payload.Poster),
	}, nil
}
