package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/amaumene/popcornarr/internal/models"
)

// RawItem is one torrent listing as reported by a source adapter, before
// any normalization.
type RawItem struct {
	Title    string
	URL      string
	Seeds    int
	Peers    int
	Size     int64
	FileSize string
	Language string
	Provider string
}

// Rule is one extraction pattern. Rules are applied in declaration order
// and the first match wins, so more specific patterns must be listed first.
//
// Show patterns capture (title, season, episode), or (title, year, date)
// when DateBased is set. Movie patterns capture (title, year, quality).
type Rule struct {
	Pattern   *regexp.Regexp
	DateBased bool
}

var qualityRegex = regexp.MustCompile(`(\d{3,4})p`)

// ExtractQuality pulls the NNNp token out of a title, empty when absent
func ExtractQuality(title string) string {
	return qualityRegex.FindString(title)
}

// ExtractShow turns one raw listing into a show draft holding a single
// torrent record. Returns false when no rule matches, which the caller
// treats as a skip, not an error.
func ExtractShow(item RawItem, rules []Rule) (*ShowDraft, bool) {
	for _, rule := range rules {
		match := rule.Pattern.FindStringSubmatch(item.Title)
		if match == nil {
			continue
		}

		title := CleanTitle(match[1])
		quality := ExtractQuality(item.Title)
		if quality == "" {
			quality = models.Quality480
		}

		draft := &ShowDraft{
			Title:     title,
			RawTitle:  item.Title,
			Slug:      Slugify(title),
			Quality:   quality,
			DateBased: rule.DateBased,
		}

		var season int
		var episode string
		if rule.DateBased {
			// season is the airing year, the date token keys the episode
			season, _ = strconv.Atoi(match[2])
			episode = strings.ReplaceAll(fillerRegex.ReplaceAllString(match[3], "-"), " ", "-")
		} else {
			season, _ = strconv.Atoi(match[2])
			ep, _ := strconv.Atoi(match[3])
			episode = strconv.Itoa(ep)
		}

		draft.AttachTorrent(season, episode, quality, models.Torrent{
			URL:      item.URL,
			Seeds:    item.Seeds,
			Peers:    item.Peers,
			Size:     item.Size,
			FileSize: item.FileSize,
			Provider: item.Provider,
		}, item.Title)

		return draft, true
	}

	return nil, false
}

// ExtractMovie turns one raw listing into a movie draft holding a single
// torrent record. Movie rules carry the quality token inside the pattern;
// an item without one never matches.
func ExtractMovie(item RawItem, rules []Rule, defaultLanguage string) (*MovieDraft, bool) {
	for _, rule := range rules {
		match := rule.Pattern.FindStringSubmatch(item.Title)
		if match == nil {
			continue
		}

		title := CleanTitle(match[1])
		year, _ := strconv.Atoi(match[2])
		quality := match[3]
		slug := Slugify(title)

		language := item.Language
		if language == "" {
			language = defaultLanguage
		}

		draft := &MovieDraft{
			Title:    title,
			RawTitle: item.Title,
			Slug:     slug,
			SlugYear: slug + "-" + match[2],
			Year:     year,
			Quality:  quality,
			Language: language,
		}

		draft.AttachTorrent(language, quality, models.Torrent{
			URL:      item.URL,
			Seeds:    item.Seeds,
			Peers:    item.Peers,
			Size:     item.Size,
			FileSize: item.FileSize,
			Provider: item.Provider,
		}, item.Title)

		return draft, true
	}

	return nil, false
}
