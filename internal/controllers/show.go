package controllers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/amaumene/popcornarr/internal/models"
	"github.com/amaumene/popcornarr/internal/scraper"
	"github.com/amaumene/popcornarr/internal/services/images"
	"github.com/amaumene/popcornarr/internal/services/trakt"
	"github.com/sirupsen/logrus"
)

// ShowController reconciles show drafts against the persisted catalog
type ShowController struct {
	db     *models.Database
	trakt  Metadata
	images ImageResolver
	logger *logrus.Logger
}

// NewShowController creates a new show merge controller
func NewShowController(db *models.Database, traktClient Metadata, imageService ImageResolver, logger *logrus.Logger) *ShowController {
	return &ShowController{
		db:     db,
		trakt:  traktClient,
		images: imageService,
		logger: logger,
	}
}

// Merge enriches one draft with canonical metadata and folds its episodes
// into the persisted show document, creating the document on first sight.
func (c *ShowController) Merge(ctx context.Context, draft *scraper.ShowDraft) error {
	summary, err := c.trakt.ShowSummary(ctx, draft.Slug)
	if err != nil {
		return fmt.Errorf("failed to enrich show %s: %w", draft.Slug, err)
	}

	meta, err := c.trakt.ShowEpisodes(ctx, summary.IDs.Slug)
	if err != nil {
		return fmt.Errorf("failed to get episodes for %s: %w", draft.Slug, err)
	}

	show, err := c.db.FindShow(summary.IDs.Imdb)
	created := false
	switch {
	case errors.Is(err, models.ErrNotFound):
		show = c.newShow(ctx, summary)
		created = true
	case err != nil:
		return fmt.Errorf("failed to look up show %s: %w", summary.IDs.Imdb, err)
	}

	incoming := c.episodesFromDraft(draft, meta)
	mergeEpisodes(show, incoming, draft.RawTitle)

	sort.Slice(show.Episodes, func(i, j int) bool {
		if show.Episodes[i].Season != show.Episodes[j].Season {
			return show.Episodes[i].Season < show.Episodes[j].Season
		}
		return show.Episodes[i].Episode < show.Episodes[j].Episode
	})

	show.NumSeasons = models.SeasonCount(show.Episodes)
	for _, ep := range show.Episodes {
		if ep.FirstAired.After(show.LatestEpisode) {
			show.LatestEpisode = ep.FirstAired
		}
	}

	if err := c.db.UpsertShow(show); err != nil {
		return fmt.Errorf("failed to persist show %s: %w", show.ImdbID, err)
	}

	entry := c.logger.WithFields(logrus.Fields{
		"imdb_id":  show.ImdbID,
		"title":    show.Title,
		"episodes": len(show.Episodes),
	})
	if created {
		entry.Info("Show created")
	} else {
		entry.Debug("Show updated")
	}
	return nil
}

// newShow builds a fresh document from canonical metadata, without
// episodes
func (c *ShowController) newShow(ctx context.Context, summary *trakt.ShowSummary) *models.Show {
	return &models.Show{
		ImdbID:   summary.IDs.Imdb,
		TvdbID:   summary.IDs.Tvdb,
		Title:    summary.Title,
		Year:     summary.Year,
		Slug:     summary.IDs.Slug,
		Synopsis: summary.Overview,
		Runtime:  summary.Runtime,
		Rating: models.Rating{
			Percentage: int(summary.Rating * 10),
			Watching:   c.trakt.WatchingCount(ctx, "show", summary.IDs.Slug),
			Votes:      summary.Votes,
		},
		Images: c.images.ShowImages(ctx, images.IDs{
			Imdb: summary.IDs.Imdb,
			Tmdb: summary.IDs.Tmdb,
			Tvdb: summary.IDs.Tvdb,
		}),
		Genres:      summary.Genres,
		Kind:        models.KindShow,
		Country:     summary.Country,
		Network:     summary.Network,
		AirDay:      summary.Airs.Day,
		AirTime:     summary.Airs.Time,
		Status:      summary.Status,
		LastUpdated: time.Now(),
	}
}

// episodesFromDraft resolves the draft's episode slots against canonical
// episode metadata. Episode index 0 is a placeholder some sources emit and
// is stripped here, before any merge. Date-based slots are matched to
// metadata by first-aired date and dropped when no air date matches.
func (c *ShowController) episodesFromDraft(draft *scraper.ShowDraft, meta []trakt.EpisodeMeta) []models.Episode {
	var out []models.Episode

	for season, episodes := range draft.Episodes {
		for key, qualities := range episodes {
			var episode models.Episode

			if draft.DateBased {
				target := fmt.Sprintf("%04d-%s", season, key)
				found, ok := findEpisodeByAirDate(meta, target)
				if !ok {
					c.logger.WithFields(logrus.Fields{
						"slug": draft.Slug,
						"date": target,
					}).Debug("No canonical episode for air date, dropping slot")
					continue
				}
				episode = found
				episode.DateBased = true
			} else {
				number, err := strconv.Atoi(key)
				if err != nil || number == 0 {
					continue
				}
				found, ok := findEpisodeByNumber(meta, season, number)
				if ok {
					episode = found
				} else {
					episode = models.Episode{Season: season, Episode: number}
				}
			}

			// Closed quality set: tokens outside the three known buckets
			// are dropped at this stage.
			episode.Torrents = make(map[string]models.Torrent)
			for _, quality := range models.Qualities {
				if t, ok := qualities[quality]; ok {
					episode.Torrents[quality] = t
				}
			}
			if len(episode.Torrents) == 0 {
				continue
			}

			out = append(out, episode)
		}
	}

	return out
}

// mergeEpisodes folds incoming episodes into the persisted list, matching
// by (season, episode) and applying the slot tie-break per quality bucket.
// Unmatched incoming episodes are appended.
func mergeEpisodes(show *models.Show, incoming []models.Episode, rawTitle string) {
	for _, in := range incoming {
		matched := false
		for i := range show.Episodes {
			existing := &show.Episodes[i]
			if existing.Season != in.Season || existing.Episode != in.Episode {
				continue
			}
			matched = true
			if existing.Torrents == nil {
				existing.Torrents = make(map[string]models.Torrent)
			}
			for _, quality := range models.Qualities {
				candidate, ok := in.Torrents[quality]
				if !ok {
					continue
				}
				current, occupied := existing.Torrents[quality]
				if scraper.Replaces(current, occupied, candidate, rawTitle) {
					existing.Torrents[quality] = candidate
				}
			}
			break
		}
		if !matched {
			show.Episodes = append(show.Episodes, in)
		}
	}
}

func findEpisodeByNumber(meta []trakt.EpisodeMeta, season, number int) (models.Episode, bool) {
	for _, m := range meta {
		if m.Season == season && m.Number == number {
			return episodeFromMeta(m), true
		}
	}
	return models.Episode{}, false
}

func findEpisodeByAirDate(meta []trakt.EpisodeMeta, date string) (models.Episode, bool) {
	for _, m := range meta {
		aired, err := time.Parse(time.RFC3339, m.FirstAired)
		if err != nil {
			continue
		}
		if aired.UTC().Format("2006-01-02") == date {
			return episodeFromMeta(m), true
		}
	}
	return models.Episode{}, false
}

func episodeFromMeta(m trakt.EpisodeMeta) models.Episode {
	aired, _ := time.Parse(time.RFC3339, m.FirstAired)
	return models.Episode{
		TvdbID:     m.IDs.Tvdb,
		Season:     m.Season,
		Episode:    m.Number,
		Title:      m.Title,
		Overview:   m.Overview,
		FirstAired: aired,
	}
}
