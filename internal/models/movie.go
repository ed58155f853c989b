package models

import "time"

// Movie is the persisted content document for one film, keyed by IMDB ID.
// Torrents are indexed by language then quality; a slot holds at most one
// record.
type Movie struct {
	ImdbID string `boltholdKey:"ImdbID"`

	Title    string
	Year     int
	Slug     string `boltholdIndex:"Slug"`
	Synopsis string
	Runtime  int
	Rating   Rating
	Images   Images
	Genres   []string
	Kind     Kind

	// Movie specific fields
	Language      string
	ReleasedAt    time.Time
	TrailerURL    string
	Certification string
	Torrents      map[string]map[string]Torrent // language -> quality -> torrent

	CreatedAt time.Time
	UpdatedAt time.Time
}
