package scraper

// Batch deduplicates the drafts produced from one pagination pass over one
// source. Dedup happens before any concurrent fan-out, so the batch is
// written by a single goroutine and needs no locking.
type Batch struct {
	movies     map[string]*MovieDraft
	movieOrder []string
	shows      map[string]*ShowDraft
	showOrder  []string
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{
		movies: make(map[string]*MovieDraft),
		shows:  make(map[string]*ShowDraft),
	}
}

// AddMovie folds a movie draft into the batch. A draft whose identity
// already exists contributes its torrent records to the existing entry and
// is then discarded.
func (b *Batch) AddMovie(draft *MovieDraft) {
	existing, ok := b.movies[draft.SlugYear]
	if !ok {
		b.movies[draft.SlugYear] = draft
		b.movieOrder = append(b.movieOrder, draft.SlugYear)
		return
	}

	for language, qualities := range draft.Torrents {
		for quality, torrent := range qualities {
			existing.AttachTorrent(language, quality, torrent, draft.RawTitle)
		}
	}
}

// AddShow folds a show draft into the batch, keyed by slug
func (b *Batch) AddShow(draft *ShowDraft) {
	existing, ok := b.shows[draft.Slug]
	if !ok {
		b.shows[draft.Slug] = draft
		b.showOrder = append(b.showOrder, draft.Slug)
		return
	}

	for season, episodes := range draft.Episodes {
		for episode, qualities := range episodes {
			for quality, torrent := range qualities {
				existing.AttachTorrent(season, episode, quality, torrent, draft.RawTitle)
			}
		}
	}
}

// Movies returns the deduplicated movie drafts in first-seen order
func (b *Batch) Movies() []*MovieDraft {
	out := make([]*MovieDraft, 0, len(b.movieOrder))
	for _, key := range b.movieOrder {
		out = append(out, b.movies[key])
	}
	return out
}

// Shows returns the deduplicated show drafts in first-seen order
func (b *Batch) Shows() []*ShowDraft {
	out := make([]*ShowDraft, 0, len(b.showOrder))
	for _, key := range b.showOrder {
		out = append(out, b.shows[key])
	}
	return out
}
