package providers

import (
	"context"
	"fmt"

	"github.com/amaumene/popcornarr/internal/config"
	"github.com/amaumene/popcornarr/internal/models"
	"github.com/amaumene/popcornarr/internal/scraper"
	"github.com/amaumene/popcornarr/internal/services/source"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// BulkProvider scrapes a source that returns its complete show listing in
// one call. No pagination, no page-count probe; per-item detail fetches
// run under the same bounded cap as enrichment.
type BulkProvider struct {
	cfg    config.Source
	client *source.Client
	deps   Deps
	logger *logrus.Logger
}

func newBulkProvider(src config.Source, deps Deps) (Provider, error) {
	client, err := source.NewClient(src, deps.Logger)
	if err != nil {
		return nil, err
	}
	return &BulkProvider{
		cfg:    src,
		client: client,
		deps:   deps,
		logger: deps.Logger,
	}, nil
}

// Name returns the source name
func (p *BulkProvider) Name() string {
	return p.cfg.Name
}

// Scrape hydrates and merges every entry of the listing. A failing entry
// is logged and skipped; siblings keep running.
func (p *BulkProvider) Scrape(ctx context.Context) error {
	items, err := p.client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", p.cfg.Name, err)
	}

	p.logger.WithFields(logrus.Fields{
		"source": p.cfg.Name,
		"items":  len(items),
	}).Info("Bulk listing fetched")

	var g errgroup.Group
	g.SetLimit(p.deps.Concurrency)
	for _, item := range items {
		item := item
		g.Go(func() error {
			detail, err := p.client.Detail(ctx, item)
			if err != nil {
				p.logger.WithError(err).WithFields(logrus.Fields{
					"source": p.cfg.Name,
					"title":  item.Title,
				}).Warn("Detail fetch failed, skipping item")
				return nil
			}

			draft, ok := p.draftFromDetail(detail)
			if !ok {
				return nil
			}
			if err := p.deps.Shows.Merge(ctx, draft); err != nil {
				p.logger.WithError(err).WithField("slug", draft.Slug).Warn("Dropping show draft")
			}
			return nil
		})
	}
	g.Wait()
	return nil
}

// draftFromDetail converts one hydrated listing entry into a show draft.
// Source-reported slugs run through the correction table, same as computed
// ones.
func (p *BulkProvider) draftFromDetail(detail *source.BulkDetail) (*scraper.ShowDraft, bool) {
	if detail.Title == "" || len(detail.Episodes) == 0 {
		return nil, false
	}

	slug := detail.Slug
	if slug == "" {
		slug = scraper.Slugify(detail.Title)
	} else {
		slug = scraper.CorrectSlug(slug)
	}

	draft := &scraper.ShowDraft{
		Title:    scraper.CleanTitle(detail.Title),
		RawTitle: detail.Title,
		Slug:     slug,
	}

	for _, episode := range detail.Episodes {
		for quality, torrent := range episode.Torrents {
			draft.AttachTorrent(episode.Season, fmt.Sprintf("%d", episode.Episode), quality, models.Torrent{
				URL:      torrent.URL,
				Seeds:    torrent.Seeds,
				Peers:    torrent.Peers,
				Provider: p.cfg.Name,
			}, detail.Title)
		}
	}

	if len(draft.Episodes) == 0 {
		return nil, false
	}
	return draft, true
}
