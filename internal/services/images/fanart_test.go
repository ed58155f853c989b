package images

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amaumene/popcornarr/internal/models"
)

func TestFanartMovieImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/603" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"moviebanner": [{"url": "http://img/banner.jpg"}],
			"moviebackground": [{"url": "http://img/bg.jpg"}],
			"movieposter": [{"url": "http://img/poster.jpg"}, {"url": "http://img/poster2.jpg"}]
		}`)
	}))
	defer srv.Close()

	client := NewFanartClient("key", newTestLogger())
	client.baseURL = srv.URL

	img, err := client.MovieImages(context.Background(), IDs{Tmdb: 603})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if img.Banner != "http://img/banner.jpg" || img.Fanart != "http://img/bg.jpg" || img.Poster != "http://img/poster.jpg" {
		t.Errorf("got %+v", img)
	}
	if !img.Complete() {
		t.Error("response with all slots must be complete")
	}
}

func TestFanartMovieImagesMissingSlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"movieposter": [{"url": "http://img/poster.jpg"}]}`)
	}))
	defer srv.Close()

	client := NewFanartClient("key", newTestLogger())
	client.baseURL = srv.URL

	img, err := client.MovieImages(context.Background(), IDs{Tmdb: 603})
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if img.Banner != models.PlaceholderImage {
		t.Errorf("missing slot must hold the sentinel, got %q", img.Banner)
	}
	if img.Complete() {
		t.Error("a response with a sentinel slot must not count as complete")
	}
}

func TestFanartMovieImagesRequiresTmdbID(t *testing.T) {
	client := NewFanartClient("key", newTestLogger())
	if _, err := client.MovieImages(context.Background(), IDs{Imdb: "tt1"}); err == nil {
		t.Error("expected an error without a tmdb id")
	}
}
