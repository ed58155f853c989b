package controllers

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/amaumene/popcornarr/internal/models"
	"github.com/amaumene/popcornarr/internal/services/images"
	"github.com/amaumene/popcornarr/internal/services/trakt"
	"github.com/sirupsen/logrus"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestDatabase(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// stubMetadata serves fixed summaries, no HTTP
type stubMetadata struct {
	movie    *trakt.MovieSummary
	show     *trakt.ShowSummary
	episodes []trakt.EpisodeMeta
	err      error
	watching int
}

func (s *stubMetadata) MovieSummary(ctx context.Context, slug string) (*trakt.MovieSummary, error) {
	return s.movie, s.err
}

func (s *stubMetadata) ShowSummary(ctx context.Context, slug string) (*trakt.ShowSummary, error) {
	return s.show, s.err
}

func (s *stubMetadata) ShowEpisodes(ctx context.Context, slug string) ([]trakt.EpisodeMeta, error) {
	return s.episodes, nil
}

func (s *stubMetadata) WatchingCount(ctx context.Context, kind, slug string) int {
	return s.watching
}

// stubImages always resolves the same bag
type stubImages struct {
	bag models.Images
}

func (s *stubImages) MovieImages(ctx context.Context, ids images.IDs) models.Images {
	return s.bag
}

func (s *stubImages) ShowImages(ctx context.Context, ids images.IDs) models.Images {
	return s.bag
}
