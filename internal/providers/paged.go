package providers

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/amaumene/popcornarr/internal/config"
	"github.com/amaumene/popcornarr/internal/scraper"
	"github.com/amaumene/popcornarr/internal/services/source"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// structuredPageSize is the fixed page size of the structured movie shape,
// which reports a total item count instead of a page count
const structuredPageSize = 50

// pager walks a paged source. Pages are fetched strictly one at a time;
// several sources rate-limit or ban concurrent pagination.
type pager struct {
	name   string
	client *source.Client
	logger *logrus.Logger
}

// totalPages normalizes the three known probe response shapes. Zero means
// the count could not be resolved.
func totalPages(resp *source.SearchResponse) int {
	switch {
	case resp.TotalPages > 0:
		return resp.TotalPages
	case resp.Data != nil && resp.Data.MovieCount > 0:
		return (resp.Data.MovieCount + structuredPageSize - 1) / structuredPageSize
	case resp.TotalRecordCount > 0 && resp.QueryRecordCount > 0:
		return (resp.TotalRecordCount + resp.QueryRecordCount - 1) / resp.QueryRecordCount
	}
	return 0
}

// forEachPage probes the source for its page count, then walks every page
// in order, handing each response to visit. A failing page contributes
// nothing and the walk continues; an unresolvable page count aborts the
// source.
func (p *pager) forEachPage(ctx context.Context, visit func(*source.SearchResponse)) error {
	probe, err := p.client.Search(ctx, 1)
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", p.name, err)
	}

	total := totalPages(probe)
	if total == 0 {
		return fmt.Errorf("could not resolve total pages for %s", p.name)
	}

	p.logger.WithFields(logrus.Fields{
		"source": p.name,
		"pages":  total,
	}).Info("Resolved page count")

	for page := 1; page <= total; page++ {
		resp, err := p.client.Search(ctx, page)
		if err != nil {
			p.logger.WithError(err).WithFields(logrus.Fields{
				"source": p.name,
				"page":   page,
			}).Warn("Page fetch failed, skipping page")
			continue
		}
		visit(resp)
	}

	return nil
}

// rawItem converts a source listing into the extractor's input shape
func rawItem(item source.Item, provider string) scraper.RawItem {
	peers := item.Peers
	if peers == 0 {
		peers = item.Leechs
	}
	return scraper.RawItem{
		Title:    item.Title,
		URL:      item.DownloadURL(),
		Seeds:    item.Seeds,
		Peers:    peers,
		Size:     item.Size,
		FileSize: item.FileSize,
		Language: item.Language,
		Provider: provider,
	}
}

// MovieProvider scrapes a paged free-text movie source
type MovieProvider struct {
	pager
	cfg  config.Source
	deps Deps
}

func newMovieProvider(src config.Source, deps Deps) (Provider, error) {
	client, err := source.NewClient(src, deps.Logger)
	if err != nil {
		return nil, err
	}
	return &MovieProvider{
		pager: pager{name: src.Name, client: client, logger: deps.Logger},
		cfg:   src,
		deps:  deps,
	}, nil
}

// Name returns the source name
func (p *MovieProvider) Name() string {
	return p.cfg.Name
}

// Scrape runs one full pass over the source
func (p *MovieProvider) Scrape(ctx context.Context) error {
	var items []source.Item
	if err := p.forEachPage(ctx, func(resp *source.SearchResponse) {
		items = append(items, resp.Items()...)
	}); err != nil {
		return err
	}

	batch := scraper.NewBatch()
	for _, item := range items {
		raw := rawItem(item, p.cfg.Name)
		if term, skip := p.deps.SkipList.Match(raw.Title); skip {
			p.logger.WithFields(logrus.Fields{
				"title": raw.Title,
				"term":  term,
			}).Debug("Item on skip list")
			continue
		}
		draft, ok := scraper.ExtractMovie(raw, p.cfg.Rules, p.cfg.Language)
		if !ok {
			p.logger.WithFields(logrus.Fields{
				"source": p.cfg.Name,
				"title":  raw.Title,
			}).Warn("No extraction rule matched")
			continue
		}
		batch.AddMovie(draft)
	}

	drafts := batch.Movies()
	p.logger.WithFields(logrus.Fields{
		"source": p.cfg.Name,
		"items":  len(items),
		"drafts": len(drafts),
	}).Info("Batch built")

	mergeMovies(ctx, drafts, p.deps)
	return nil
}

// ShowProvider scrapes a paged free-text show source
type ShowProvider struct {
	pager
	cfg  config.Source
	deps Deps
}

func newShowProvider(src config.Source, deps Deps) (Provider, error) {
	client, err := source.NewClient(src, deps.Logger)
	if err != nil {
		return nil, err
	}
	return &ShowProvider{
		pager: pager{name: src.Name, client: client, logger: deps.Logger},
		cfg:   src,
		deps:  deps,
	}, nil
}

// Name returns the source name
func (p *ShowProvider) Name() string {
	return p.cfg.Name
}

// Scrape runs one full pass over the source
func (p *ShowProvider) Scrape(ctx context.Context) error {
	var items []source.Item
	if err := p.forEachPage(ctx, func(resp *source.SearchResponse) {
		items = append(items, resp.Items()...)
	}); err != nil {
		return err
	}

	batch := scraper.NewBatch()
	for _, item := range items {
		raw := rawItem(item, p.cfg.Name)
		if term, skip := p.deps.SkipList.Match(raw.Title); skip {
			p.logger.WithFields(logrus.Fields{
				"title": raw.Title,
				"term":  term,
			}).Debug("Item on skip list")
			continue
		}
		draft, ok := scraper.ExtractShow(raw, p.cfg.Rules)
		if !ok {
			p.logger.WithFields(logrus.Fields{
				"source": p.cfg.Name,
				"title":  raw.Title,
			}).Warn("No extraction rule matched")
			continue
		}
		batch.AddShow(draft)
	}

	drafts := batch.Shows()
	p.logger.WithFields(logrus.Fields{
		"source": p.cfg.Name,
		"items":  len(items),
		"drafts": len(drafts),
	}).Info("Batch built")

	mergeShows(ctx, drafts, p.deps)
	return nil
}

// mergeMovies fans drafts out to enrichment and merge under the bounded
// concurrency cap. A failing draft is logged and dropped; it never cancels
// sibling work.
func mergeMovies(ctx context.Context, drafts []*scraper.MovieDraft, deps Deps) {
	var g errgroup.Group
	g.SetLimit(deps.Concurrency)
	var dropped atomic.Int64
	for _, draft := range drafts {
		draft := draft
		g.Go(func() error {
			if err := deps.Movies.Merge(ctx, draft); err != nil {
				deps.Logger.WithError(err).WithField("slug", draft.Slug).Warn("Dropping movie draft")
				dropped.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	deps.Logger.WithFields(logrus.Fields{
		"merged":  int64(len(drafts)) - dropped.Load(),
		"dropped": dropped.Load(),
	}).Info("Merge pass completed")
}

// mergeShows is the show counterpart of mergeMovies
func mergeShows(ctx context.Context, drafts []*scraper.ShowDraft, deps Deps) {
	var g errgroup.Group
	g.SetLimit(deps.Concurrency)
	var dropped atomic.Int64
	for _, draft := range drafts {
		draft := draft
		g.Go(func() error {
			if err := deps.Shows.Merge(ctx, draft); err != nil {
				deps.Logger.WithError(err).WithField("slug", draft.Slug).Warn("Dropping show draft")
				dropped.Add(1)
			}
			return nil
		})
	}
	g.Wait()

	deps.Logger.WithFields(logrus.Fields{
		"merged":  int64(len(drafts)) - dropped.Load(),
		"dropped": dropped.Load(),
	}).Info("Merge pass completed")
}
