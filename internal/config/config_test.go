package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SQLITE_DATABASE", "RECORD_PLANS", "ALERTS_POLL_INTERVAL", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DatabasePath != "/data/metroplanner.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.RecordPlans {
		t.Error("RecordPlans should default to false")
	}
	if cfg.AlertsPollInterval != time.Minute {
		t.Errorf("AlertsPollInterval = %v, want 1m", cfg.AlertsPollInterval)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RECORD_PLANS", "true")
	t.Setenv("ALERTS_POLL_INTERVAL", "15")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	if cfg.Port != "9000" || !cfg.RecordPlans {
		t.Errorf("env not applied: port=%q record=%v", cfg.Port, cfg.RecordPlans)
	}
	if cfg.AlertsPollInterval != 15*time.Second {
		t.Errorf("AlertsPollInterval = %v", cfg.AlertsPollInterval)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadEnvFallsBackOnBadValues(t *testing.T) {
	t.Setenv("RECORD_PLANS", "maybe")
	t.Setenv("ALERTS_POLL_INTERVAL", "soon")

	cfg := Load()
	if cfg.RecordPlans || cfg.AlertsPollInterval != time.Minute {
		t.Errorf("bad values should fall back to defaults, got %v %v", cfg.RecordPlans, cfg.AlertsPollInterval)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NETWORK_FILE", "")
	t.Setenv("NETWORK_NAME", "")

	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid file",
			yaml: "port: \"9090\"\nnetwork_file: city.network\nalerts_url: https://alerts.example/feed.pb\nalerts_poll_interval: 30s\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9090" || cfg.NetworkFile != "city.network" {
					t.Errorf("unexpected config: %+v", cfg)
				}
				if cfg.AlertsPollInterval != 30*time.Second {
					t.Errorf("AlertsPollInterval = %v", cfg.AlertsPollInterval)
				}
			},
		},
		{
			name: "network name instead of file",
			yaml: "network_name: City\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.NetworkName != "City" || cfg.Port != "8080" {
					t.Errorf("unexpected config: %+v", cfg)
				}
			},
		},
		{name: "no network source", yaml: "port: \"9090\"\n", wantErr: true},
		{name: "non numeric port", yaml: "port: http\nnetwork_file: x\n", wantErr: true},
		{name: "bad alerts url", yaml: "network_file: x\nalerts_url: not a url\n", wantErr: true},
		{name: "malformed yaml", yaml: "port: [\n", wantErr: true},
		{name: "zero poll interval", yaml: "network_file: x\nalerts_url: https://alerts.example/feed.pb\nalerts_poll_interval: 0s\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			cfg, err := LoadFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			tt.check(t, cfg)
		})
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateAlertsPollInterval(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		interval string
		wantErr  bool
	}{
		{"positive with feed", "https://alerts.example/feed.pb", "30", false},
		{"zero with feed", "https://alerts.example/feed.pb", "0", true},
		{"negative with feed", "https://alerts.example/feed.pb", "-5", true},
		{"zero without feed", "", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NETWORK_FILE", "city.network")
			t.Setenv("GTFS_ALERTS_URL", tt.url)
			t.Setenv("ALERTS_POLL_INTERVAL", tt.interval)

			err := Load().Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
