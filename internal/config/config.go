package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Upstream contains configuration for the catalog API.
type Upstream struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"` // seconds
	RetryAttempts  int    `toml:"retry_attempts"`
	UserAgent      string `toml:"user_agent"`
	PageLimit      int    `toml:"page_limit"`
}

// Images contains configuration for the image CDN.
type Images struct {
	CDNHost     string `toml:"cdn_host"`
	CDNBaseURL  string `toml:"cdn_base_url"`
	Placeholder string `toml:"placeholder"`
	HighQuality int    `toml:"high_quality"`
	LowQuality  int    `toml:"low_quality"`
	LowWidth    int    `toml:"low_width"`
}

// Cache contains configuration for the list cache.
type Cache struct {
	Enabled       bool     `toml:"enabled"`
	Backend       string   `toml:"backend"` // sqlite, file or memory
	Path          string   `toml:"path"`
	TTLMinutes    int      `toml:"ttl_minutes"`
	StaleFallback []string `toml:"stale_fallback"` // resource kinds allowed to serve stale data on failure
}

// Catalog contains defaults applied during normalization and list fan-out.
type Catalog struct {
	DefaultTitle      string   `toml:"default_title"`
	DefaultQuality    string   `toml:"default_quality"`
	DefaultLanguage   string   `toml:"default_language"`
	HomeCountries     []string `toml:"home_countries"`
	FanoutConcurrency int      `toml:"fanout_concurrency"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for marquee.
//
// Configuration sections by subsystem:
//   - Upstream: catalog API base URL, timeouts and retries
//   - Images: CDN host and resize parameters
//   - Cache: list cache backend, location and TTL
//   - Catalog: normalization defaults and home fan-out
//   - Logging: log format, level and optional file output
type Config struct {
	Upstream Upstream `toml:"upstream"`
	Images   Images   `toml:"images"`
	Cache    Cache    `toml:"cache"`
	Catalog  Catalog  `toml:"catalog"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/marquee/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/marquee/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("marquee.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI writes to.
func (c *Config) EnsureDirectories() error {
	if c.Cache.Enabled && c.Cache.Backend != CacheBackendMemory && strings.TrimSpace(c.Cache.Path) != "" {
		dir := filepath.Dir(c.Cache.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		if err := os.MkdirAll(c.Logging.Dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", c.Logging.Dir, err)
		}
	}
	return nil
}

// RequestTimeout returns the per-request ceiling enforced by the transport.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Upstream.RequestTimeout) * time.Second
}

// CacheTTL returns the lifetime of a cached list entry.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// StaleFallbackAllowed reports whether a resource kind may be served from a
// stale cache entry when a refresh fails.
func (c *Config) StaleFallbackAllowed(kind string) bool {
	kind = strings.ToLower(strings.TrimSpace(kind))
	for _, allowed := range c.Cache.StaleFallback {
		if allowed == kind {
			return true
		}
	}
	return false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "marquee")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/marquee"
	}
	return filepath.Join(home, ".cache", "marquee")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
