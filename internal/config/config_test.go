package config

import "testing"

func TestLoad(t *testing.T) {
	t.Setenv("TRAKT_API_KEY", "test-key")
	t.Setenv("CONFIG_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.TraktAPIKey != "test-key" {
		t.Errorf("trakt key = %q", cfg.TraktAPIKey)
	}
	if cfg.ScrapeConcurrency != 2 {
		t.Errorf("default concurrency = %d, want 2", cfg.ScrapeConcurrency)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("default port = %q, want 8080", cfg.ServerPort)
	}
	if cfg.DatabaseFile == "" || cfg.SkipListFile == "" {
		t.Error("paths not derived from config dir")
	}
}

func TestLoadRequiresTraktKey(t *testing.T) {
	t.Setenv("TRAKT_API_KEY", "")
	t.Setenv("CONFIG_DIR", t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected an error without a trakt key")
	}
}

func TestLoadRejectsZeroConcurrency(t *testing.T) {
	t.Setenv("TRAKT_API_KEY", "test-key")
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("SCRAPE_CONCURRENCY", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error on zero concurrency")
	}
}
