package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateUpstream(); err != nil {
		return err
	}
	if err := c.validateImages(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateUpstream() error {
	parsed, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("upstream.base_url must be an absolute http(s) URL, got %q", c.Upstream.BaseURL)
	}
	if c.Upstream.RetryAttempts > 10 {
		return errors.New("upstream.retry_attempts must be at most 10")
	}
	return nil
}

func (c *Config) validateImages() error {
	if strings.Contains(c.Images.CDNHost, "/") {
		return fmt.Errorf("images.cdn_host must be a bare host name, got %q", c.Images.CDNHost)
	}
	for name, value := range map[string]int{
		"images.high_quality": c.Images.HighQuality,
		"images.low_quality":  c.Images.LowQuality,
	} {
		if value > 100 {
			return fmt.Errorf("%s must be between 1 and 100, got %d", name, value)
		}
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendSQLite, CacheBackendFile, CacheBackendMemory:
	default:
		return fmt.Errorf("cache.backend: unsupported value %q (expected sqlite, file or memory)", c.Cache.Backend)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
