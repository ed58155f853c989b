package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Trakt
	TraktAPIKey string

	// Image providers (optional; a missing key skips that provider in the
	// fallback chain)
	FanartAPIKey string
	TMDBAPIKey   string
	OMDBAPIKey   string

	// Scraping
	ScrapeConcurrency int // bounded fan-out cap for enrichment+merge (default: 2)

	// Server
	ServerPort string

	// Paths
	SkipListFile string // $CONFIG_DIR/skiplist.txt
	DatabaseFile string // $CONFIG_DIR/popcornarr.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("SCRAPE_CONCURRENCY", 2)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	// NOW read CONFIG_DIR from viper (which has loaded .env file)
	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "popcornarr")
	} else {
		// Convert relative path to absolute path
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// Trakt
		TraktAPIKey: viper.GetString("TRAKT_API_KEY"),

		// Image providers
		FanartAPIKey: viper.GetString("FANART_API_KEY"),
		TMDBAPIKey:   viper.GetString("TMDB_API_KEY"),
		OMDBAPIKey:   viper.GetString("OMDB_API_KEY"),

		// Scraping
		ScrapeConcurrency: viper.GetInt("SCRAPE_CONCURRENCY"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		SkipListFile: filepath.Join(configDir, "skiplist.txt"),
		DatabaseFile: filepath.Join(configDir, "popcornarr.db"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TraktAPIKey == "" {
		return nil, fmt.Errorf("TRAKT_API_KEY is required")
	}
	if config.ScrapeConcurrency < 1 {
		return nil, fmt.Errorf("SCRAPE_CONCURRENCY must be at least 1")
	}

	return config, nil
}
