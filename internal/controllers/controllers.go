package controllers

import (
	"context"

	"github.com/amaumene/popcornarr/internal/models"
	"github.com/amaumene/popcornarr/internal/services/images"
	"github.com/amaumene/popcornarr/internal/services/trakt"
)

// Metadata is the canonical-summary surface the merge controllers need.
// Satisfied by trakt.Client.
type Metadata interface {
	MovieSummary(ctx context.Context, slug string) (*trakt.MovieSummary, error)
	ShowSummary(ctx context.Context, slug string) (*trakt.ShowSummary, error)
	ShowEpisodes(ctx context.Context, slug string) ([]trakt.EpisodeMeta, error)
	WatchingCount(ctx context.Context, kind, slug string) int
}

// ImageResolver is the artwork surface. Satisfied by images.Service.
type ImageResolver interface {
	MovieImages(ctx context.Context, ids images.IDs) models.Images
	ShowImages(ctx context.Context, ids images.IDs) models.Images
}
