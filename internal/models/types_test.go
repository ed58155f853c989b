package models

import "testing"

func TestSeasonCount(t *testing.T) {
	episodes := []Episode{
		{Season: 1, Episode: 1},
		{Season: 1, Episode: 2},
		{Season: 2, Episode: 1},
		{Season: 4, Episode: 1},
	}
	if got := SeasonCount(episodes); got != 3 {
		t.Errorf("SeasonCount = %d, want 3", got)
	}
	if got := SeasonCount(nil); got != 0 {
		t.Errorf("SeasonCount(nil) = %d, want 0", got)
	}
}

func TestImagesComplete(t *testing.T) {
	if PlaceholderImages().Complete() {
		t.Error("the all-placeholder bag is not complete")
	}

	img := Images{Banner: "http://b", Fanart: "http://f", Poster: "http://p"}
	if !img.Complete() {
		t.Error("a fully resolved bag is complete")
	}

	img.Poster = PlaceholderImage
	if img.Complete() {
		t.Error("one sentinel slot fails the whole bag")
	}
}
