package models

import "time"

// Show is the persisted content document for one series, keyed by IMDB ID.
type Show struct {
	ImdbID string `boltholdKey:"ImdbID"`
	TvdbID int

	Title    string
	Year     int
	Slug     string `boltholdIndex:"Slug"`
	Synopsis string
	Runtime  int
	Rating   Rating
	Images   Images
	Genres   []string
	Kind     Kind

	// Show specific fields
	Country       string
	Network       string
	AirDay        string
	AirTime       string
	Status        string
	NumSeasons    int // always the distinct season count across Episodes
	LastUpdated   time.Time
	LatestEpisode time.Time
	Episodes      []Episode

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Episode is one aired episode with its torrent slots, one per quality
// bucket at most.
type Episode struct {
	TvdbID     int
	Season     int
	Episode    int
	Title      string
	Overview   string
	DateBased  bool
	FirstAired time.Time
	Torrents   map[string]Torrent // quality -> torrent
}

// SeasonCount returns the number of distinct season values across episodes
func SeasonCount(episodes []Episode) int {
	seen := make(map[int]struct{}, 8)
	for _, ep := range episodes {
		seen[ep.Season] = struct{}{}
	}
	return len(seen)
}
