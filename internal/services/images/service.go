package images

import (
	"context"

	"github.com/amaumene/popcornarr/internal/config"
	"github.com/amaumene/popcornarr/internal/models"
	"github.com/sirupsen/logrus"
)

// IDs carries the external identifiers the ranked providers key on
type IDs struct {
	Imdb string
	Tmdb int
	Tvdb int
}

// Provider is one ranked artwork source
type Provider interface {
	Name() string
	MovieImages(ctx context.Context, ids IDs) (models.Images, error)
	ShowImages(ctx context.Context, ids IDs) (models.Images, error)
}

// Service resolves artwork through the ranked provider chain. A response
// with any slot still at the placeholder counts as a whole-provider
// failure and falls through to the next provider; after the last one the
// all-placeholder bag is returned. This never errors.
type Service struct {
	chain  []Provider
	logger *logrus.Logger
}

// NewService builds the fallback chain from the configured providers, in
// rank order: fanart, then tmdb, then omdb. Providers without an API key
// are left out of the chain.
func NewService(cfg *config.Config, logger *logrus.Logger) *Service {
	var chain []Provider
	if cfg.FanartAPIKey != "" {
		chain = append(chain, NewFanartClient(cfg.FanartAPIKey, logger))
	}
	if cfg.TMDBAPIKey != "" {
		chain = append(chain, NewTMDBClient(cfg.TMDBAPIKey, logger))
	}
	if cfg.OMDBAPIKey != "" {
		chain = append(chain, NewOMDBClient(cfg.OMDBAPIKey, logger))
	}
	return &Service{chain: chain, logger: logger}
}

// NewServiceWithChain builds a service over an explicit provider chain
func NewServiceWithChain(logger *logrus.Logger, chain ...Provider) *Service {
	return &Service{chain: chain, logger: logger}
}

// MovieImages resolves artwork for a movie
func (s *Service) MovieImages(ctx context.Context, ids IDs) models.Images {
	return s.resolve(ctx, ids, func(p Provider) (models.Images, error) {
		return p.MovieImages(ctx, ids)
	})
}

// ShowImages resolves artwork for a show
func (s *Service) ShowImages(ctx context.Context, ids IDs) models.Images {
	return s.resolve(ctx, ids, func(p Provider) (models.Images, error) {
		return p.ShowImages(ctx, ids)
	})
}

func (s *Service) resolve(ctx context.Context, ids IDs, fetch func(Provider) (models.Images, error)) models.Images {
	for _, provider := range s.chain {
		img, err := fetch(provider)
		if err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"provider": provider.Name(),
				"imdb_id":  ids.Imdb,
			}).Debug("Image provider failed, falling through")
			continue
		}
		if !img.Complete() {
			s.logger.WithFields(logrus.Fields{
				"provider": provider.Name(),
				"imdb_id":  ids.Imdb,
			}).Debug("Image provider response incomplete, falling through")
			continue
		}
		return img
	}
	return models.PlaceholderImages()
}

// orPlaceholder substitutes the sentinel for an empty URL
func orPlaceholder(url string) string {
	if url == "" {
		return models.PlaceholderImage
	}
	return url
}
