package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/gitscm/pkg/config"
)

func TestLoadFromFile_YAML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
git:
  ssl_verify: false
  timeout: "1m"
  cache_ttl: "30s"

admin:
  timeout: "5s"
  user_agent: "gitscm-test"

logging:
  level: "debug"
  format: "json"

store:
  path: "store.yaml"

server:
  addr: "127.0.0.1:8181"
`

	if err := os.WriteFile(configFile, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}

	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Git.SSLVerify {
		t.Error("expected ssl_verify false")
	}
	if cfg.Git.Timeout != time.Minute {
		t.Errorf("expected git timeout 1m, got %v", cfg.Git.Timeout)
	}
	if cfg.Git.CacheTTL != 30*time.Second {
		t.Errorf("expected cache ttl 30s, got %v", cfg.Git.CacheTTL)
	}
	if cfg.Admin.Timeout != 5*time.Second || cfg.Admin.UserAgent != "gitscm-test" {
		t.Errorf("unexpected admin config %+v", cfg.Admin)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
	if want := filepath.Join(tmpDir, "store.yaml"); cfg.Store.Path != want {
		t.Errorf("expected store path %s, got %s", want, cfg.Store.Path)
	}
	if cfg.Server.Addr != "127.0.0.1:8181" {
		t.Errorf("unexpected addr %s", cfg.Server.Addr)
	}
}

func TestLoadFromFile_ExplicitFalseSurvivesDefaults(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte("git:\n  ssl_verify: false\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.NewBuilder().FromFile(configFile).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.Git.SSLVerify {
		t.Error("explicit ssl_verify=false was overwritten by defaults")
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "unknown field", content: "git:\n  depth: 1\n", wantMsg: "depth"},
		{name: "bad duration", content: "admin:\n  timeout: soon\n", wantMsg: "admin.timeout"},
		{name: "bad cache ttl", content: "git:\n  cache_ttl: never\n", wantMsg: "git.cache_ttl"},
		{name: "malformed yaml", content: "git: [", wantMsg: "parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(configFile, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}

			_, err := config.LoadFromFile(configFile)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error to mention %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestLoadFromFile_Empty(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Git.Timeout != 0 || cfg.Store.Path != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := config.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDiscoverConfigFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	if got := config.DiscoverConfigFile(); got != "" {
		t.Fatalf("expected no config file, got %s", got)
	}

	path := filepath.Join(xdg, "gitscm", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if got := config.DiscoverConfigFile(); got != path {
		t.Fatalf("expected %s, got %s", path, got)
	}
}
