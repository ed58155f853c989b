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

const fanartBaseURL = "https://webservice.fanart.tv/v3"

// FanartClient is the highest-ranked artwork provider
type FanartClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewFanartClient creates a fanart.tv client
func NewFanartClient(apiKey string, logger *logrus.Logger) *FanartClient {
	return &FanartClient{
		apiKey:     apiKey,
		baseURL:    fanartBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Name identifies the provider in logs
func (c *FanartClient) Name() string {
	return "fanart"
}

type fanartImage struct {
	URL string `json:"url"`
}

// MovieImages fetches movie artwork keyed by TMDB ID
func (c *FanartClient) MovieImages(ctx context.Context, ids IDs) (models.Images, error) {
	if ids.Tmdb == 0 {
		return models.Images{}, fmt.Errorf("fanart: no tmdb id")
	}

	var payload struct {
		Banner     []fanartImage `json:"moviebanner"`
		Background []fanartImage `json:"moviebackground"`
		Poster     []fanartImage `json:"movieposter"`
	}
	url := fmt.Sprintf("%s/movies/%d?api_key=%s", c.baseURL, ids.Tmdb, c.apiKey)
	if err := c.get(ctx, url, &payload); err != nil {
		return models.Images{}, err
	}

	return models.Images{
		Banner: orPlaceholder(firstURL(payload.Banner)),
		Fanart: orPlaceholder(firstURL(payload.Background)),
		Poster: orPlaceholder(firstURL(payload.Poster)),
	}, nil
}

// ShowImages fetches show artwork keyed by TVDB ID
func (c *FanartClient) ShowImages(ctx context.Context, ids IDs) (models.Images, error) {
	if ids.Tvdb == 0 {
		return models.Images{}, fmt.Errorf("fanart: no tvdb id")
	}

	var payload struct {
		Banner     []fanartImage `json:"tvbanner"`
		Background []fanartImage `json:"showbackground"`
		Poster     []fanartImage `json:"tvposter"`
	}
	url := fmt.Sprintf("%s/tv/%d?api_key=%s", c.baseURL, ids.Tvdb, c.apiKey)
	if err := c.get(ctx, url, &payload); err != nil {
		return models.Images{}, err
	}

	return models.Images{
		Banner: orPlaceholder(firstURL(payload.Banner)),
		Fanart: orPlaceholder(firstURL(payload.Background)),
		Poster: orPlaceholder(firstURL(payload.Poster)),
	}, nil
}

func firstURL(images []fanartImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func (c *FanartClient) get(ctx context.Context, url string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fanart returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(result)
}
