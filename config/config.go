package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for painelgo. Values come from (in
// order) built-in defaults, the persisted config.json, then environment
// variables loaded through godotenv.
type Config struct {
	DataDir      string `json:"data_dir"`
	DataCacheDir string `json:"data_cache_dir"`
	CacheEnabled bool   `json:"cache_enabled"`

	// Backend origin. A single variable governs every service; the "/api"
	// suffix is appended by the client only when the origin lacks it.
	BackendURL string `json:"backend_url"`
	WSUrl      string `json:"ws_url"`

	DefaultPortfolioID int64 `json:"default_portfolio_id"`

	// Chat assistant. The feature is disabled (not an error) when the
	// selected provider's API key is absent.
	LLMProvider    string `json:"llm_provider"`
	ChatModel      string `json:"chat_model"`
	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	Debug bool `json:"debug"`
}

// DefaultConfig builds the configuration from defaults, .env and the
// process environment.
func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()
	cfg := DefaultConfigWithRoot(currentDir)

	_ = godotenv.Load()
	cfg.loadFromEnv()

	return cfg
}

// DefaultConfigWithRoot returns defaults with data directories rooted at dir.
func DefaultConfigWithRoot(dir string) *Config {
	return &Config{
		DataDir:      filepath.Join(dir, "data"),
		DataCacheDir: filepath.Join(dir, "data", "cache"),
		CacheEnabled: true,

		BackendURL: "http://localhost:5001",
		WSUrl:      "ws://localhost:5001/ws",

		DefaultPortfolioID: 1,

		LLMProvider: "openai",
		ChatModel:   "gpt-4o-mini",

		Debug: false,
	}
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("DATA_DIR"); val != "" {
		c.DataDir = val
	}
	if val := os.Getenv("DATA_CACHE_DIR"); val != "" {
		c.DataCacheDir = val
	}
	if val := os.Getenv("CACHE_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.CacheEnabled = enabled
		}
	}

	if val := os.Getenv("PAINEL_BACKEND_URL"); val != "" {
		c.BackendURL = val
	}
	if val := os.Getenv("PAINEL_WS_URL"); val != "" {
		c.WSUrl = val
	}
	if val := os.Getenv("PAINEL_PORTFOLIO_ID"); val != "" {
		if id, err := strconv.ParseInt(val, 10, 64); err == nil && id > 0 {
			c.DefaultPortfolioID = id
		}
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = val
	}
	if val := os.Getenv("CHAT_MODEL"); val != "" {
		c.ChatModel = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}

	if val := os.Getenv("PAINEL_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Validate rejects configurations the services cannot run with.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.BackendURL)
	if base == "" {
		return fmt.Errorf("backend_url is required")
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend_url %q is not a valid origin", c.BackendURL)
	}
	if c.WSUrl != "" {
		if u, err := url.Parse(c.WSUrl); err != nil || u.Scheme == "" {
			return fmt.Errorf("ws_url %q is not a valid origin", c.WSUrl)
		}
	}
	switch c.LLMProvider {
	case "openai", "deepseek":
	default:
		return fmt.Errorf("llm_provider %q is not supported (openai, deepseek)", c.LLMProvider)
	}
	if c.DefaultPortfolioID <= 0 {
		return fmt.Errorf("default_portfolio_id must be positive")
	}
	return nil
}

// ChatAPIKey returns the API key for the configured provider, empty when the
// assistant should run disabled.
func (c *Config) ChatAPIKey() string {
	switch c.LLMProvider {
	case "deepseek":
		return c.DeepSeekAPIKey
	default:
		return c.OpenAIAPIKey
	}
}

// EnsureDirectories creates the data directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.DataDir, c.DataCacheDir} {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
