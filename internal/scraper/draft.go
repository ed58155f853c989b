package scraper

import (
	"strings"

	"github.com/amaumene/popcornarr/internal/models"
)

// MovieDraft is the transient extraction of one film during a single scrape
// pass. Drafts live only for the duration of a batch and are never persisted
// directly.
type MovieDraft struct {
	Title    string
	RawTitle string // original source title, keeps markers the pattern strips
	Slug     string
	SlugYear string // dedup identity: slug plus release year
	Year     int
	Quality  string
	Language string
	Torrents map[string]map[string]models.Torrent // language -> quality -> torrent
}

// ShowDraft is the transient extraction of one series during a single
// scrape pass. Episode keys are the episode number as a string, or the
// "MM-DD" date token for date-based shows.
type ShowDraft struct {
	Title     string
	RawTitle  string
	Slug      string
	Quality   string
	DateBased bool
	Episodes  map[int]map[string]map[string]models.Torrent // season -> episode -> quality -> torrent
}

// Replaces decides whether candidate wins the slot over existing. The
// candidate wins when the slot is empty, when its title carries the repack
// marker (a repack is authoritative regardless of seeds), or when it has
// strictly more seeds. Otherwise the slot is left alone; there is no
// partial-field merge between two records.
func Replaces(existing models.Torrent, occupied bool, candidate models.Torrent, candidateTitle string) bool {
	if !occupied {
		return true
	}
	if strings.Contains(strings.ToLower(candidateTitle), "repack") {
		return true
	}
	return existing.Seeds < candidate.Seeds
}

// AttachTorrent folds a torrent record into the draft's (language, quality)
// slot, applying the tie-break rule against whatever already occupies it.
// candidateTitle is the source title the record was extracted from.
func (d *MovieDraft) AttachTorrent(language, quality string, t models.Torrent, candidateTitle string) {
	if d.Torrents == nil {
		d.Torrents = make(map[string]map[string]models.Torrent)
	}
	if d.Torrents[language] == nil {
		d.Torrents[language] = make(map[string]models.Torrent)
	}
	existing, ok := d.Torrents[language][quality]
	if Replaces(existing, ok, t, candidateTitle) {
		d.Torrents[language][quality] = t
	}
}

// AttachTorrent folds a torrent record into the draft's
// (season, episode, quality) slot, applying the tie-break rule.
func (d *ShowDraft) AttachTorrent(season int, episode, quality string, t models.Torrent, candidateTitle string) {
	if d.Episodes == nil {
		d.Episodes = make(map[int]map[string]map[string]models.Torrent)
	}
	if d.Episodes[season] == nil {
		d.Episodes[season] = make(map[string]map[string]models.Torrent)
	}
	if d.Episodes[season][episode] == nil {
		d.Episodes[season][episode] = make(map[string]models.Torrent)
	}
	existing, ok := d.Episodes[season][episode][quality]
	if Replaces(existing, ok, t, candidateTitle) {
		d.Episodes[season][episode][quality] = t
	}
}
