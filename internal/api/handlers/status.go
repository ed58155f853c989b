package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/popcornarr/internal/models"
	"github.com/sirupsen/logrus"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalMovies   int      `json:"total_movies"`
	TotalShows    int      `json:"total_shows"`
	TotalEpisodes int      `json:"total_episodes"`
	MovieGenres   []string `json:"movie_genres"`
	ShowGenres    []string `json:"show_genres"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	movies, err := h.db.CountMovies()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count movies")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	shows, err := h.db.GetAllShows()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get shows")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	episodes := 0
	for _, show := range shows {
		episodes += len(show.Episodes)
	}

	movieGenres, err := h.db.DistinctGenres(models.KindMovie)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get movie genres")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	showGenres, err := h.db.DistinctGenres(models.KindShow)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get show genres")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		TotalMovies:   movies,
		TotalShows:    len(shows),
		TotalEpisodes: episodes,
		MovieGenres:   movieGenres,
		ShowGenres:    showGenres,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
