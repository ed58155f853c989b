package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/amaumene/popcornarr/internal/config"
	"github.com/amaumene/popcornarr/internal/models"
	"github.com/amaumene/popcornarr/internal/scraper"
	"github.com/amaumene/popcornarr/internal/services/source"
	"github.com/sirupsen/logrus"
)

// YtsProvider scrapes the structured movie-listing shape. Entries arrive
// with their torrents already split per quality, so no pattern extraction
// runs; each entry converts straight into a draft.
type YtsProvider struct {
	pager
	cfg  config.Source
	deps Deps
}

func newYtsProvider(src config.Source, deps Deps) (Provider, error) {
	client, err := source.NewClient(src, deps.Logger)
	if err != nil {
		return nil, err
	}
	return &YtsProvider{
		pager: pager{name: src.Name, client: client, logger: deps.Logger},
		cfg:   src,
		deps:  deps,
	}, nil
}

// Name returns the source name
func (p *YtsProvider) Name() string {
	return p.cfg.Name
}

// Scrape runs one full pass over the source
func (p *YtsProvider) Scrape(ctx context.Context) error {
	var movies []source.YtsMovie
	if err := p.forEachPage(ctx, func(resp *source.SearchResponse) {
		if resp.Data != nil {
			movies = append(movies, resp.Data.Movies...)
		}
	}); err != nil {
		return err
	}

	batch := scraper.NewBatch()
	for _, movie := range movies {
		draft, ok := p.draftFromMovie(movie)
		if !ok {
			continue
		}
		batch.AddMovie(draft)
	}

	drafts := batch.Movies()
	p.logger.WithFields(logrus.Fields{
		"source": p.cfg.Name,
		"items":  len(movies),
		"drafts": len(drafts),
	}).Info("Batch built")

	mergeMovies(ctx, drafts, p.deps)
	return nil
}

// draftFromMovie converts one structured entry into a movie draft
func (p *YtsProvider) draftFromMovie(movie source.YtsMovie) (*scraper.MovieDraft, bool) {
	if movie.Title == "" || len(movie.Torrents) == 0 {
		return nil, false
	}

	title := scraper.CleanTitle(movie.Title)
	slug := scraper.Slugify(title)

	language := strings.ToLower(movie.Language)
	if language == "" {
		language = p.cfg.Language
	}

	draft := &scraper.MovieDraft{
		Title:    title,
		RawTitle: fmt.Sprintf("%s (%d)", movie.Title, movie.Year),
		Slug:     slug,
		SlugYear: fmt.Sprintf("%s-%d", slug, movie.Year),
		Year:     movie.Year,
		Language: language,
	}

	for _, torrent := range movie.Torrents {
		if torrent.Quality == "" {
			continue
		}
		draft.AttachTorrent(language, torrent.Quality, models.Torrent{
			URL:      torrent.URL,
			Seeds:    torrent.Seeds,
			Peers:    torrent.Peers,
			Size:     torrent.SizeBytes,
			FileSize: torrent.Size,
			Provider: p.cfg.Name,
		}, draft.RawTitle)
	}

	if len(draft.Torrents) == 0 {
		return nil, false
	}
	return draft, true
}
