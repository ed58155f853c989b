package scraper

import (
	"regexp"
	"testing"

	"github.com/amaumene/popcornarr/internal/models"
)

var testShowRules = []Rule{
	{Pattern: regexp.MustCompile(`(.*).[sS](\d{2})[eE](\d{2})`)},
	{Pattern: regexp.MustCompile(`(.*).(\d{1,2})[xX](\d{2})`)},
	{Pattern: regexp.MustCompile(`(.*).(\d{4}).(\d{2}.\d{2})`), DateBased: true},
}

var testMovieRules = []Rule{
	{Pattern: regexp.MustCompile(`(.*).\((\d{4})\).*?(\d{3,4}p)`)},
	{Pattern: regexp.MustCompile(`(.*).(\d{4}).*?(\d{3,4}p)`)},
}

func TestExtractShowSeasonEpisode(t *testing.T) {
	item := RawItem{
		Title: "Example.Show.S01E02.720p.HDTV-GROUP",
		URL:   "magnet:?xt=urn:btih:abc",
		Seeds: 42,
		Peers: 10,
	}

	draft, ok := ExtractShow(item, testShowRules)
	if !ok {
		t.Fatal("expected a rule to match")
	}

	if draft.Title != "Example Show" {
		t.Errorf("title = %q, want %q", draft.Title, "Example Show")
	}
	if draft.Slug != "example-show" {
		t.Errorf("slug = %q, want %q", draft.Slug, "example-show")
	}
	if draft.Quality != models.Quality720 {
		t.Errorf("quality = %q, want 720p", draft.Quality)
	}
	if draft.DateBased {
		t.Error("expected a numeric draft")
	}

	torrent, ok := draft.Episodes[1]["2"][models.Quality720]
	if !ok {
		t.Fatalf("expected torrent at season 1 episode 2, got %+v", draft.Episodes)
	}
	if torrent.Seeds != 42 || torrent.URL != item.URL {
		t.Errorf("torrent record mismatch: %+v", torrent)
	}
}

func TestExtractShowAltForm(t *testing.T) {
	item := RawItem{Title: "Example.Show.3x05.HDTV-GROUP", Seeds: 5}

	draft, ok := ExtractShow(item, testShowRules)
	if !ok {
		t.Fatal("expected a rule to match")
	}

	if _, ok := draft.Episodes[3]["5"][models.Quality480]; !ok {
		t.Fatalf("expected season 3 episode 5 at default quality, got %+v", draft.Episodes)
	}
}

func TestExtractShowDateBased(t *testing.T) {
	item := RawItem{Title: "The.Nightly.Report.2016.03.14.HDTV-GROUP", Seeds: 3}

	draft, ok := ExtractShow(item, testShowRules)
	if !ok {
		t.Fatal("expected the date rule to match")
	}
	if !draft.DateBased {
		t.Fatal("expected a date-based draft")
	}

	// Airing year keys the season, the date token keys the episode.
	if _, ok := draft.Episodes[2016]["03-14"][models.Quality480]; !ok {
		t.Fatalf("expected slot at 2016/03-14, got %+v", draft.Episodes)
	}
}

func TestExtractShowPrecedence(t *testing.T) {
	// Carries both an SxxExx token and a four-digit run; the first rule
	// must win.
	item := RawItem{Title: "Example.Show.2016.S01E02.720p-GROUP"}

	draft, ok := ExtractShow(item, testShowRules)
	if !ok {
		t.Fatal("expected a rule to match")
	}
	if draft.DateBased {
		t.Error("season/episode form must take precedence over the date form")
	}
	if _, ok := draft.Episodes[1]["2"][models.Quality720]; !ok {
		t.Fatalf("expected season 1 episode 2, got %+v", draft.Episodes)
	}
}

func TestExtractShowNoMatch(t *testing.T) {
	if _, ok := ExtractShow(RawItem{Title: "randomfile.iso"}, testShowRules); ok {
		t.Error("expected no rule to match")
	}
}

func TestExtractMovie(t *testing.T) {
	item := RawItem{
		Title: "The.Matrix.1999.1080p.BluRay.x264-GROUP",
		URL:   "magnet:?xt=urn:btih:def",
		Seeds: 100,
	}

	draft, ok := ExtractMovie(item, testMovieRules, "en")
	if !ok {
		t.Fatal("expected a rule to match")
	}

	if draft.Title != "The Matrix" {
		t.Errorf("title = %q, want %q", draft.Title, "The Matrix")
	}
	if draft.Year != 1999 {
		t.Errorf("year = %d, want 1999", draft.Year)
	}
	if draft.SlugYear != "the-matrix-1999" {
		t.Errorf("slug-year = %q, want the-matrix-1999", draft.SlugYear)
	}
	if draft.Quality != models.Quality1080 {
		t.Errorf("quality = %q, want 1080p", draft.Quality)
	}
	if draft.Language != "en" {
		t.Errorf("language = %q, want fallback en", draft.Language)
	}

	if _, ok := draft.Torrents["en"][models.Quality1080]; !ok {
		t.Fatalf("expected torrent at en/1080p, got %+v", draft.Torrents)
	}
}

func TestExtractMovieParenthesizedYear(t *testing.T) {
	item := RawItem{Title: "Inception (2010) 720p BluRay", Language: "fr"}

	draft, ok := ExtractMovie(item, testMovieRules, "en")
	if !ok {
		t.Fatal("expected the parenthesized form to match")
	}
	if draft.SlugYear != "inception-2010" {
		t.Errorf("slug-year = %q, want inception-2010", draft.SlugYear)
	}
	if draft.Language != "fr" {
		t.Errorf("item language must win over the fallback, got %q", draft.Language)
	}
}

func TestExtractMovieRequiresQuality(t *testing.T) {
	if _, ok := ExtractMovie(RawItem{Title: "The.Matrix.1999.BluRay"}, testMovieRules, "en"); ok {
		t.Error("an item without a quality token must not match")
	}
}

func TestExtractQuality(t *testing.T) {
	if got := ExtractQuality("Show.S01E01.1080p.WEB"); got != "1080p" {
		t.Errorf("got %q, want 1080p", got)
	}
	if got := ExtractQuality("Show.S01E01.WEB"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
