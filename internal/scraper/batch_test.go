package scraper

import (
	"testing"

	"github.com/amaumene/popcornarr/internal/models"
)

func movieDraft(slugYear, rawTitle, language, quality string, seeds int) *MovieDraft {
	d := &MovieDraft{
		Title:    "Example Movie",
		RawTitle: rawTitle,
		Slug:     "example-movie",
		SlugYear: slugYear,
		Quality:  quality,
		Language: language,
	}
	d.AttachTorrent(language, quality, models.Torrent{Seeds: seeds, URL: rawTitle}, rawTitle)
	return d
}

func TestBatchAddMovieDeduplicates(t *testing.T) {
	batch := NewBatch()
	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.2020.720p-A", "en", models.Quality720, 3))
	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.2020.720p-B", "en", models.Quality720, 7))
	batch.AddMovie(movieDraft("example-movie-2019", "Example.Movie.2019.720p-C", "en", models.Quality720, 1))

	movies := batch.Movies()
	if len(movies) != 2 {
		t.Fatalf("expected 2 deduplicated drafts, got %d", len(movies))
	}

	// Same identity: the higher-seed record takes the slot.
	if got := movies[0].Torrents["en"][models.Quality720].Seeds; got != 7 {
		t.Errorf("expected 7 seeds after fold, got %d", got)
	}

	// First-seen order.
	if movies[0].SlugYear != "example-movie-2020" || movies[1].SlugYear != "example-movie-2019" {
		t.Errorf("order broken: %q, %q", movies[0].SlugYear, movies[1].SlugYear)
	}
}

func TestBatchAddMovieDifferentQualities(t *testing.T) {
	batch := NewBatch()
	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.2020.720p", "en", models.Quality720, 3))
	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.2020.1080p", "en", models.Quality1080, 1))

	movies := batch.Movies()
	if len(movies) != 1 {
		t.Fatalf("expected 1 draft, got %d", len(movies))
	}
	if len(movies[0].Torrents["en"]) != 2 {
		t.Errorf("expected both quality slots, got %+v", movies[0].Torrents["en"])
	}
}

func TestBatchAddMovieRepackOverride(t *testing.T) {
	batch := NewBatch()
	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.2020.720p-A", "en", models.Quality720, 100))
	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.REPACK.2020.720p-B", "en", models.Quality720, 1))

	got := batch.Movies()[0].Torrents["en"][models.Quality720]
	if got.Seeds != 1 {
		t.Errorf("repack record must take the slot despite fewer seeds, got %+v", got)
	}
}

func TestBatchAddMovieIdempotent(t *testing.T) {
	batch := NewBatch()
	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.2020.720p", "en", models.Quality720, 5))
	before := batch.Movies()[0].Torrents["en"][models.Quality720]

	batch.AddMovie(movieDraft("example-movie-2020", "Example.Movie.2020.720p", "en", models.Quality720, 5))
	after := batch.Movies()[0].Torrents["en"][models.Quality720]

	if before != after {
		t.Errorf("re-adding the same record changed the slot: %+v -> %+v", before, after)
	}
}

func TestBatchAddShowFoldsEpisodes(t *testing.T) {
	first := &ShowDraft{Title: "Example Show", RawTitle: "Example.Show.S01E01.720p", Slug: "example-show"}
	first.AttachTorrent(1, "1", models.Quality720, models.Torrent{Seeds: 2}, first.RawTitle)

	second := &ShowDraft{Title: "Example Show", RawTitle: "Example.Show.S01E02.720p", Slug: "example-show"}
	second.AttachTorrent(1, "2", models.Quality720, models.Torrent{Seeds: 4}, second.RawTitle)

	batch := NewBatch()
	batch.AddShow(first)
	batch.AddShow(second)

	shows := batch.Shows()
	if len(shows) != 1 {
		t.Fatalf("expected 1 deduplicated show, got %d", len(shows))
	}
	if len(shows[0].Episodes[1]) != 2 {
		t.Errorf("expected both episodes folded in, got %+v", shows[0].Episodes)
	}
}
