package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
api:
  listen_addr: ":9999"
  token: "secret"
collaborator:
  base_url: "http://localhost:8000"
  timeout_seconds: 5
auth:
  enabled: true
  client:
    client_id: "board"
    client_secret: "hush"
    token_url: "http://localhost:8000/token"
journal:
  backend: "sqlite"
  path: "/tmp/journal.db"
metrics:
  prometheus_enabled: true
  prometheus_port: ":9191"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.ListenAddr != ":9999" || cfg.API.Token != "secret" {
		t.Errorf("unexpected api config: %+v", cfg.API)
	}
	if cfg.Collaborator.BaseURL != "http://localhost:8000" || cfg.Collaborator.TimeoutSeconds != 5 {
		t.Errorf("unexpected collaborator config: %+v", cfg.Collaborator)
	}
	if !cfg.Auth.Enabled || cfg.Auth.Client.ClientID != "board" {
		t.Errorf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Journal.Backend != "sqlite" || cfg.Journal.Path != "/tmp/journal.db" {
		t.Errorf("unexpected journal config: %+v", cfg.Journal)
	}
	if !cfg.Metrics.PrometheusEnabled || cfg.Metrics.PrometheusPort != ":9191" {
		t.Errorf("unexpected metrics config: %+v", cfg.Metrics)
	}
}

func TestLoad_JSONWithDefaults(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "collaborator": {"base_url": "http://localhost:8000"}
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr, got %q", cfg.API.ListenAddr)
	}
	if cfg.Collaborator.TimeoutSeconds != 10 {
		t.Errorf("expected default timeout, got %d", cfg.Collaborator.TimeoutSeconds)
	}
	if cfg.Journal.Backend != "jsonl" || cfg.Journal.Path != "submissions.log" {
		t.Errorf("expected journal defaults, got %+v", cfg.Journal)
	}
	if cfg.Metrics.PrometheusPort != ":9090" {
		t.Errorf("expected default prometheus port, got %q", cfg.Metrics.PrometheusPort)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
collaborator:
  base_url: "http://localhost:8000"
`)
	t.Setenv("FB_API__TOKEN", "env-token")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Token != "env-token" {
		t.Errorf("env override not applied, got %q", cfg.API.Token)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
api:
  listen_addr: ":8080"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for missing base_url")
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `x = 1`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestJournalConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     JournalConfig
		wantErr bool
	}{
		{"jsonl", JournalConfig{Backend: "jsonl", Path: "x.log"}, false},
		{"sqlite", JournalConfig{Backend: "sqlite", Path: "x.db"}, false},
		{"unknown backend", JournalConfig{Backend: "redis", Path: "x"}, true},
		{"empty path", JournalConfig{Backend: "jsonl"}, true},
	}
	for _, c := range cases {
		err := c.cfg.Validate()
		if (err != nil) != c.wantErr {
			t.Errorf("%s: err=%v wantErr=%v", c.name, err, c.wantErr)
		}
	}
}
