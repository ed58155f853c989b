package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amaumene/popcornarr/internal/models"
	"github.com/amaumene/popcornarr/internal/scraper"
	"github.com/amaumene/popcornarr/internal/services/images"
	"github.com/amaumene/popcornarr/internal/services/trakt"
	"github.com/sirupsen/logrus"
)

// MovieController reconciles movie drafts against the persisted catalog
type MovieController struct {
	db     *models.Database
	trakt  Metadata
	images ImageResolver
	logger *logrus.Logger
}

// NewMovieController creates a new movie merge controller
func NewMovieController(db *models.Database, traktClient Metadata, imageService ImageResolver, logger *logrus.Logger) *MovieController {
	return &MovieController{
		db:     db,
		trakt:  traktClient,
		images: imageService,
		logger: logger,
	}
}

// Merge enriches one draft with canonical metadata and folds it into the
// persisted movie document, creating the document on first sight. A draft
// whose identity cannot be resolved is discarded.
func (c *MovieController) Merge(ctx context.Context, draft *scraper.MovieDraft) error {
	summary, err := c.trakt.MovieSummary(ctx, draft.Slug)
	if err != nil {
		return fmt.Errorf("failed to enrich movie %s: %w", draft.Slug, err)
	}

	existing, err := c.db.FindMovie(summary.IDs.Imdb)
	switch {
	case errors.Is(err, models.ErrNotFound):
		movie := c.newMovie(ctx, draft, summary)
		if err := c.db.UpsertMovie(movie); err != nil {
			return fmt.Errorf("failed to persist movie %s: %w", movie.ImdbID, err)
		}
		c.logger.WithFields(logrus.Fields{
			"imdb_id": movie.ImdbID,
			"title":   movie.Title,
		}).Info("Movie created")
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up movie %s: %w", summary.IDs.Imdb, err)
	}

	c.mergeTorrents(existing, draft)
	if err := c.db.UpsertMovie(existing); err != nil {
		return fmt.Errorf("failed to persist movie %s: %w", existing.ImdbID, err)
	}

	c.logger.WithFields(logrus.Fields{
		"imdb_id": existing.ImdbID,
		"title":   existing.Title,
	}).Debug("Movie updated")
	return nil
}

// newMovie builds a fresh document from canonical metadata plus the
// draft's torrents
func (c *MovieController) newMovie(ctx context.Context, draft *scraper.MovieDraft, summary *trakt.MovieSummary) *models.Movie {
	releasedAt, _ := time.Parse("2006-01-02", summary.Released)

	return &models.Movie{
		ImdbID:   summary.IDs.Imdb,
		Title:    summary.Title,
		Year:     summary.Year,
		Slug:     summary.IDs.Slug,
		Synopsis: summary.Overview,
		Runtime:  summary.Runtime,
		Rating: models.Rating{
			Percentage: int(summary.Rating * 10),
			Watching:   c.trakt.WatchingCount(ctx, "movie", summary.IDs.Slug),
			Votes:      summary.Votes,
		},
		Images: c.images.MovieImages(ctx, images.IDs{
			Imdb: summary.IDs.Imdb,
			Tmdb: summary.IDs.Tmdb,
		}),
		Genres:        summary.Genres,
		Kind:          models.KindMovie,
		Language:      summary.Language,
		ReleasedAt:    releasedAt,
		TrailerURL:    summary.Trailer,
		Certification: summary.Certification,
		Torrents:      draft.Torrents,
	}
}

// mergeTorrents re-applies the slot tie-break against the persisted
// records, slot by slot
func (c *MovieController) mergeTorrents(movie *models.Movie, draft *scraper.MovieDraft) {
	if movie.Torrents == nil {
		movie.Torrents = make(map[string]map[string]models.Torrent)
	}
	for language, qualities := range draft.Torrents {
		if movie.Torrents[language] == nil {
			movie.Torrents[language] = make(map[string]models.Torrent)
		}
		for quality, candidate := range qualities {
			current, ok := movie.Torrents[language][quality]
			if scraper.Replaces(current, ok, candidate, draft.RawTitle) {
				movie.Torrents[language][quality] = candidate
			}
		}
	}
}
