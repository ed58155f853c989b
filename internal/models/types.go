package models

// Kind distinguishes the two content document types
type Kind string

const (
	KindMovie Kind = "movie"
	KindShow  Kind = "show"
)

// Quality buckets recognized by the show merge. This is a closed set;
// torrents carrying any other token are dropped at the show-merge stage.
const (
	Quality480  = "480p"
	Quality720  = "720p"
	Quality1080 = "1080p"
)

// Qualities lists the show quality buckets in ascending order
var Qualities = []string{Quality480, Quality720, Quality1080}

// PlaceholderImage is the sentinel used when no artwork could be resolved
const PlaceholderImage = "images/posterholder.png"

// Rating holds the popularity figures for a content document
type Rating struct {
	Percentage int
	Watching   int
	Votes      int
}

// Images holds the three artwork slots of a content document
type Images struct {
	Banner string
	Fanart string
	Poster string
}

// PlaceholderImages returns an Images value with every slot set to the sentinel
func PlaceholderImages() Images {
	return Images{
		Banner: PlaceholderImage,
		Fanart: PlaceholderImage,
		Poster: PlaceholderImage,
	}
}

// Complete reports whether every artwork slot was resolved past the sentinel
func (i Images) Complete() bool {
	return i.Banner != PlaceholderImage &&
		i.Fanart != PlaceholderImage &&
		i.Poster != PlaceholderImage
}
