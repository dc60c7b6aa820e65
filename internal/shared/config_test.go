package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Playback.BaseURL != "http://localhost:9090" {
		t.Errorf("expected default playback base URL, got %s", config.Playback.BaseURL)
	}
	if config.Database.Path != "tidalq.db" {
		t.Errorf("expected default database path, got %s", config.Database.Path)
	}
	if config.Queue.ProgressEvery != 1 {
		t.Errorf("expected progress_every 1, got %d", config.Queue.ProgressEvery)
	}
	if config.Queue.SubmitsPerSecond != 4.0 {
		t.Errorf("expected submits_per_second 4.0, got %f", config.Queue.SubmitsPerSecond)
	}
	if config.Queue.MaxResolverCalls != 2 {
		t.Errorf("expected max_resolver_calls 2, got %d", config.Queue.MaxResolverCalls)
	}
	if config.Credentials.Tidal.CountryCode != "US" {
		t.Errorf("expected default country code US, got %s", config.Credentials.Tidal.CountryCode)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.tidal]
client_id = "abc"
client_secret = "def"
country_code = "DE"

[playback]
base_url = "http://example.com:9000"

[queue]
progress_every = 5
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Credentials.Tidal.ClientID != "abc" {
			t.Errorf("expected client_id abc, got %s", config.Credentials.Tidal.ClientID)
		}
		if config.Playback.BaseURL != "http://example.com:9000" {
			t.Errorf("expected playback base URL, got %s", config.Playback.BaseURL)
		}
		if config.Queue.ProgressEvery != 5 {
			t.Errorf("expected progress_every 5, got %d", config.Queue.ProgressEvery)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed file")
		}
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	config := DefaultConfig()
	config.Credentials.Tidal.ClientID = "saved-id"

	if err := SaveConfig(path, config); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loaded.Credentials.Tidal.ClientID != "saved-id" {
		t.Errorf("expected round-trip client_id, got %s", loaded.Credentials.Tidal.ClientID)
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("creates from template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected created file to parse, got %v", err)
		}
		if config.Playback.BaseURL == "" {
			t.Error("expected template defaults in created file")
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when the file already exists")
		}
	})
}

func TestTidalConfigMap(t *testing.T) {
	cfg := TidalConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:8080/callback",
		CountryCode:  "NO",
	}

	m := cfg.Map()
	if m["client_id"] != "id" || m["client_secret"] != "secret" {
		t.Errorf("unexpected credential map: %v", m)
	}
	if m["redirect_uri"] != "http://localhost:8080/callback" || m["country_code"] != "NO" {
		t.Errorf("unexpected credential map: %v", m)
	}
}
