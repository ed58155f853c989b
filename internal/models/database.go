package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = bolthold.ErrNotFound

// Database wraps the bolthold store
type Database struct {
	store *bolthold.Store
}

// NewDatabase creates a new database connection
func NewDatabase(path string) (*Database, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Database{store: store}, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	return db.store.Close()
}

// Movie operations

// FindMovie retrieves a movie document by IMDB ID
func (db *Database) FindMovie(imdbID string) (*Movie, error) {
	var movie Movie
	if err := db.store.Get(imdbID, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// UpsertMovie creates the movie document or replaces the existing one.
// Upsert semantics let a concurrent first write from another scrape pass
// resolve without a uniqueness failure.
func (db *Database) UpsertMovie(movie *Movie) error {
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now()
	}
	movie.UpdatedAt = time.Now()
	return db.store.Upsert(movie.ImdbID, movie)
}

// CountMovies returns the number of persisted movie documents
func (db *Database) CountMovies() (int, error) {
	return db.store.Count(&Movie{}, nil)
}

// Show operations

// FindShow retrieves a show document by IMDB ID
func (db *Database) FindShow(imdbID string) (*Show, error) {
	var show Show
	if err := db.store.Get(imdbID, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// UpsertShow creates the show document or replaces the existing one
func (db *Database) UpsertShow(show *Show) error {
	if show.CreatedAt.IsZero() {
		show.CreatedAt = time.Now()
	}
	show.UpdatedAt = time.Now()
	return db.store.Upsert(show.ImdbID, show)
}

// CountShows returns the number of persisted show documents
func (db *Database) CountShows() (int, error) {
	return db.store.Count(&Show{}, nil)
}

// DistinctGenres returns the sorted set of genres across all documents of
// the given kind
func (db *Database) DistinctGenres(kind Kind) ([]string, error) {
	seen := make(map[string]struct{})

	switch kind {
	case KindMovie:
		var movies []*Movie
		if err := db.store.Find(&movies, nil); err != nil {
			return nil, err
		}
		for _, m := range movies {
			for _, g := range m.Genres {
				seen[g] = struct{}{}
			}
		}
	case KindShow:
		var shows []*Show
		if err := db.store.Find(&shows, nil); err != nil {
			return nil, err
		}
		for _, s := range shows {
			for _, g := range s.Genres {
				seen[g] = struct{}{}
			}
		}
	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}

	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres, nil
}

// GetAllShows retrieves all show documents
func (db *Database) GetAllShows() ([]*Show, error) {
	var shows []*Show
	err := db.store.Find(&shows, nil)
	return shows, err
}

// GetAllMovies retrieves all movie documents
func (db *Database) GetAllMovies() ([]*Movie, error) {
	var movies []*Movie
	err := db.store.Find(&movies, nil)
	return movies, err
}
