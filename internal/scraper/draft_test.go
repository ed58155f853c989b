package scraper

import (
	"testing"

	"github.com/amaumene/popcornarr/internal/models"
)

func TestReplaces(t *testing.T) {
	tests := []struct {
		name      string
		existing  models.Torrent
		occupied  bool
		candidate models.Torrent
		title     string
		want      bool
	}{
		{
			name:      "empty slot always taken",
			occupied:  false,
			candidate: models.Torrent{Seeds: 0},
			want:      true,
		},
		{
			name:      "more seeds wins",
			existing:  models.Torrent{Seeds: 3},
			occupied:  true,
			candidate: models.Torrent{Seeds: 7},
			want:      true,
		},
		{
			name:      "fewer seeds loses",
			existing:  models.Torrent{Seeds: 7},
			occupied:  true,
			candidate: models.Torrent{Seeds: 3},
			want:      false,
		},
		{
			name:      "equal seeds keeps existing",
			existing:  models.Torrent{Seeds: 5},
			occupied:  true,
			candidate: models.Torrent{Seeds: 5},
			want:      false,
		},
		{
			name:      "repack wins regardless of seeds",
			existing:  models.Torrent{Seeds: 100},
			occupied:  true,
			candidate: models.Torrent{Seeds: 1},
			title:     "Example.Show.S01E02.REPACK.720p-GROUP",
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Replaces(tt.existing, tt.occupied, tt.candidate, tt.title); got != tt.want {
				t.Errorf("Replaces() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMovieDraftAttachTorrent(t *testing.T) {
	draft := &MovieDraft{}

	draft.AttachTorrent("en", models.Quality720, models.Torrent{Seeds: 3}, "Movie.2020.720p")
	draft.AttachTorrent("en", models.Quality720, models.Torrent{Seeds: 7}, "Movie.2020.720p")
	if draft.Torrents["en"][models.Quality720].Seeds != 7 {
		t.Errorf("expected the 7-seed record, got %+v", draft.Torrents["en"][models.Quality720])
	}

	// A lower-seed candidate must not downgrade the slot.
	draft.AttachTorrent("en", models.Quality720, models.Torrent{Seeds: 2}, "Movie.2020.720p")
	if draft.Torrents["en"][models.Quality720].Seeds != 7 {
		t.Errorf("slot downgraded: %+v", draft.Torrents["en"][models.Quality720])
	}

	// Separate qualities never compete.
	draft.AttachTorrent("en", models.Quality1080, models.Torrent{Seeds: 1}, "Movie.2020.1080p")
	if len(draft.Torrents["en"]) != 2 {
		t.Errorf("expected two quality slots, got %+v", draft.Torrents["en"])
	}
}

func TestShowDraftAttachTorrent(t *testing.T) {
	draft := &ShowDraft{}

	draft.AttachTorrent(1, "2", models.Quality720, models.Torrent{Seeds: 10}, "Show.S01E02.720p")
	draft.AttachTorrent(1, "2", models.Quality720, models.Torrent{Seeds: 1, URL: "repack"}, "Show.S01E02.REPACK.720p")
	if draft.Episodes[1]["2"][models.Quality720].URL != "repack" {
		t.Error("repack candidate must take the slot")
	}
}
