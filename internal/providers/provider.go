package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/popcornarr/internal/config"
	"github.com/amaumene/popcornarr/internal/controllers"
	"github.com/amaumene/popcornarr/internal/utils"
	"github.com/sirupsen/logrus"
)

// Provider drives one source end to end: pagination or bulk listing,
// extraction, batch dedup, then enrichment and merge.
type Provider interface {
	Name() string
	Scrape(ctx context.Context) error
}

// Deps bundles the collaborators every provider variant needs
type Deps struct {
	Movies      *controllers.MovieController
	Shows       *controllers.ShowController
	SkipList    *utils.SkipList
	Concurrency int
	Logger      *logrus.Logger
}

type factory func(src config.Source, deps Deps) (Provider, error)

// factories maps the catalog strategy key to its constructor. Resolution
// happens once at startup; an unknown key fails the bootstrap.
var factories = map[string]factory{
	"movie": newMovieProvider,
	"show":  newShowProvider,
	"yts":   newYtsProvider,
	"bulk":  newBulkProvider,
}

// New builds the provider for one source catalog entry
func New(src config.Source, deps Deps) (Provider, error) {
	build, ok := factories[src.Strategy]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q for source %s", src.Strategy, src.Name)
	}
	return build(src, deps)
}

// Execute runs one provider and converts its failure into a logged error,
// so a failing source never aborts the rest of the run. The scheduler
// passes each provider in explicitly; there is no shared current-provider
// state.
func Execute(ctx context.Context, provider Provider, logger *logrus.Logger) {
	start := time.Now()
	logger.WithField("source", provider.Name()).Info("Starting scrape")

	if err := provider.Scrape(ctx); err != nil {
		logger.WithError(err).WithField("source", provider.Name()).Error("Scrape failed")
		return
	}

	logger.WithFields(logrus.Fields{
		"source":   provider.Name(),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("Scrape completed")
}
