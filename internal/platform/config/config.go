package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth    = 3
	DefaultDepth    = 3
	DefaultMaxNodes = 800
	DefaultAPIURL   = "https://en.wikipedia.org/w/api.php"
	envPrefix       = "WIKITRAIL_"
)

// DefaultDenylist holds the naming conventions of non-article pages.
var DefaultDenylist = []string{"Wikipedia", "Template", "User", "Help", "Portal"}

type Config struct {
	Width     int           `yaml:"width" env:"WIDTH"`
	Depth     int           `yaml:"depth" env:"DEPTH"`
	Hints     bool          `yaml:"hints" env:"HINTS"`
	MaxNodes  int           `yaml:"max_nodes" env:"MAX_NODES"`
	Seed      uint64        `yaml:"seed" env:"SEED"`
	APIURL    string        `yaml:"api_url" env:"API_URL"`
	LinkLimit string        `yaml:"link_limit" env:"LINK_LIMIT"`
	UserAgent string        `yaml:"user_agent" env:"USER_AGENT"`
	Timeout   time.Duration `yaml:"timeout" env:"TIMEOUT"`
	Denylist  []string      `yaml:"denylist" env:"DENYLIST"`
	CachePath string        `yaml:"cache_path" env:"CACHE_PATH"`
	CacheTTL  time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
	NoCache   bool          `yaml:"no_cache" env:"NO_CACHE"`
	LogPath   string        `yaml:"log_path" env:"LOG_PATH"`
	LogLevel  string        `yaml:"log_level" env:"LOG_LEVEL"`
}

func Default() Config {
	dataDir := filepath.Join(os.TempDir(), "wikitrail")
	if dir, err := os.UserCacheDir(); err == nil {
		dataDir = filepath.Join(dir, "wikitrail")
	}
	return Config{
		Width:     DefaultWidth,
		Depth:     DefaultDepth,
		Hints:     true,
		MaxNodes:  DefaultMaxNodes,
		APIURL:    DefaultAPIURL,
		LinkLimit: "max",
		UserAgent: "wikitrail/0.1 (terminal link game)",
		Timeout:   10 * time.Second,
		Denylist:  append([]string(nil), DefaultDenylist...),
		CachePath: filepath.Join(dataDir, "links.db"),
		CacheTTL:  24 * time.Hour,
		LogPath:   filepath.Join(dataDir, "wikitrail.log"),
		LogLevel:  "info",
	}
}

// DefaultPath is where Load looks when no explicit config file is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "wikitrail", "config.yaml")
}

// Load layers defaults, the YAML file at path and WIKITRAIL_* variables.
// A missing file is only an error when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Width < 1 {
		return fmt.Errorf("width must be at least 1, got %d", c.Width)
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.MaxNodes < 1 {
		return fmt.Errorf("max nodes must be positive, got %d", c.MaxNodes)
	}
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api url is required")
	}
	if c.Timeout < 0 || c.CacheTTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
