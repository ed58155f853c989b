package config

import (
	"regexp"

	"github.com/amaumene/popcornarr/internal/scraper"
)

// Source describes one scrape target. Strategy is the registry key the
// provider package resolves at startup; an unknown key fails the whole
// bootstrap rather than one run.
type Source struct {
	Name     string
	Strategy string // "movie", "show", "yts" or "bulk"
	BaseURL  string
	Query    map[string]string
	Language string
	Rules    []scraper.Rule
}

// showRules are the extraction patterns for free-text show listings.
// Declaration order is precedence: the first matching pattern wins, so the
// season/episode forms sit above the looser date form.
var showRules = []scraper.Rule{
	{Pattern: regexp.MustCompile(`(.*).[sS](\d{2})[eE](\d{2})`)},
	{Pattern: regexp.MustCompile(`(.*).(\d{1,2})[xX](\d{2})`)},
	{Pattern: regexp.MustCompile(`(.*).(\d{4}).(\d{2}.\d{2})`), DateBased: true},
}

// movieRules capture (title, year, quality). The parenthesized-year form is
// more specific and must stay first.
var movieRules = []scraper.Rule{
	{Pattern: regexp.MustCompile(`(.*).\((\d{4})\).*?(\d{3,4}p)`)},
	{Pattern: regexp.MustCompile(`(.*).(\d{4}).*?(\d{3,4}p)`)},
}

// Sources returns the static scrape catalog. A failing entry aborts only
// itself; the scheduler walks the rest of the list regardless.
func Sources() []Source {
	return []Source{
		{
			Name:     "yts",
			Strategy: "yts",
			BaseURL:  "https://yts.mx/api/v2/list_movies.json",
			Query:    map[string]string{"limit": "50", "sort_by": "date_added"},
			Language: "en",
		},
		{
			Name:     "eztv",
			Strategy: "bulk",
			BaseURL:  "https://eztv.ag/api",
		},
		{
			Name:     "kat-shows-hdtv",
			Strategy: "show",
			BaseURL:  "https://kat.cr/json.php",
			Query:    map[string]string{"q": "x264 hdtv", "field": "seeders", "order": "desc", "category": "tv"},
			Rules:    showRules,
		},
		{
			Name:     "kat-shows-720p",
			Strategy: "show",
			BaseURL:  "https://kat.cr/json.php",
			Query:    map[string]string{"q": "x264 720p", "field": "seeders", "order": "desc", "category": "tv"},
			Rules:    showRules,
		},
		{
			Name:     "kat-movies-720p",
			Strategy: "movie",
			BaseURL:  "https://kat.cr/json.php",
			Query:    map[string]string{"q": "x264 720p", "field": "seeders", "order": "desc", "category": "movies"},
			Language: "en",
			Rules:    movieRules,
		},
		{
			Name:     "kat-movies-1080p",
			Strategy: "movie",
			BaseURL:  "https://kat.cr/json.php",
			Query:    map[string]string{"q": "x264 1080p", "field": "seeders", "order": "desc", "category": "movies"},
			Language: "en",
			Rules:    movieRules,
		},
	}
}
