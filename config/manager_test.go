package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestManagerCreatesAndUpdates(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.json")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := mgr.Get()
	cfg.BackendURL = "http://painel.example:8080"
	cfg.DefaultPortfolioID = 7

	data, _ := json.Marshal(cfg)
	if err := mgr.UpdateFromJSON(string(data)); err != nil {
		t.Fatalf("UpdateFromJSON: %v", err)
	}

	updated := mgr.Get()
	if updated.BackendURL != cfg.BackendURL {
		t.Fatalf("expected backend url %s, got %s", cfg.BackendURL, updated.BackendURL)
	}
	if updated.DefaultPortfolioID != 7 {
		t.Fatalf("expected portfolio id 7, got %d", updated.DefaultPortfolioID)
	}
}

func TestManagerRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	cfg := mgr.Get()
	cfg.BackendURL = ""
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("expected validation error for empty backend url")
	}

	cfg = mgr.Get()
	cfg.LLMProvider = "gemini"
	if err := mgr.Update(cfg); err == nil {
		t.Fatal("expected validation error for unsupported provider")
	}
}

func TestManagerWatchReloads(t *testing.T) {
	dir := t.TempDir()
	mgr, err := NewManager(WithConfigDir(dir))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan Config, 1)
	if err := mgr.Watch(ctx, func(cfg Config) {
		reloaded <- cfg
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	cfg := mgr.Get()
	cfg.BackendURL = "http://changed.example:5001"

	if err := writeConfigFile(mgr.Path(), cfg); err != nil {
		t.Fatalf("writeConfigFile: %v", err)
	}

	select {
	case got := <-reloaded:
		if got.BackendURL != cfg.BackendURL {
			t.Fatalf("reload applied %s, want %s", got.BackendURL, cfg.BackendURL)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("watcher did not fire on config change")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PAINEL_BACKEND_URL", "http://env.example:9999")
	t.Setenv("LLM_PROVIDER", "deepseek")
	t.Setenv("PAINEL_PORTFOLIO_ID", "3")

	cfg := DefaultConfig()
	if cfg.BackendURL != "http://env.example:9999" {
		t.Fatalf("env backend url not applied: %s", cfg.BackendURL)
	}
	if cfg.LLMProvider != "deepseek" {
		t.Fatalf("env provider not applied: %s", cfg.LLMProvider)
	}
	if cfg.DefaultPortfolioID != 3 {
		t.Fatalf("env portfolio id not applied: %d", cfg.DefaultPortfolioID)
	}
}
