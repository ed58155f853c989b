package models

// Torrent is one downloadable candidate for a quality slot. A record is
// immutable once created; competing records for the same slot are resolved
// by the tie-break rule in the scraper package, never field-merged.
type Torrent struct {
	URL      string
	Seeds    int
	Peers    int
	Size     int64  // bytes, 0 when the source does not report it
	FileSize string // human-readable size label, may be empty
	Provider string // name of the source the record came from
}
