package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeUpstream()
	c.normalizeImages()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeCatalog()
	return c.normalizeLogging()
}

func (c *Config) normalizeUpstream() {
	if value, ok := os.LookupEnv("MARQUEE_API_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.Upstream.BaseURL = value
	}
	c.Upstream.BaseURL = strings.TrimRight(strings.TrimSpace(c.Upstream.BaseURL), "/")
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = defaultUpstreamBaseURL
	}
	if c.Upstream.RequestTimeout <= 0 {
		c.Upstream.RequestTimeout = defaultRequestTimeout
	}
	if c.Upstream.RetryAttempts <= 0 {
		c.Upstream.RetryAttempts = defaultRetryAttempts
	}
	c.Upstream.UserAgent = strings.TrimSpace(c.Upstream.UserAgent)
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = defaultUserAgent
	}
	if c.Upstream.PageLimit <= 0 {
		c.Upstream.PageLimit = defaultPageLimit
	}
}

func (c *Config) normalizeImages() {
	c.Images.CDNHost = strings.ToLower(strings.TrimSpace(c.Images.CDNHost))
	if c.Images.CDNHost == "" {
		c.Images.CDNHost = defaultCDNHost
	}
	c.Images.CDNBaseURL = strings.TrimRight(strings.TrimSpace(c.Images.CDNBaseURL), "/")
	if c.Images.CDNBaseURL == "" {
		c.Images.CDNBaseURL = "https://" + c.Images.CDNHost
	}
	c.Images.Placeholder = strings.TrimSpace(c.Images.Placeholder)
	if c.Images.Placeholder == "" {
		c.Images.Placeholder = defaultPlaceholder
	}
	if c.Images.HighQuality <= 0 {
		c.Images.HighQuality = defaultHighQuality
	}
	if c.Images.LowQuality <= 0 {
		c.Images.LowQuality = defaultLowQuality
	}
	if c.Images.LowWidth <= 0 {
		c.Images.LowWidth = defaultLowWidth
	}
}

func (c *Config) normalizeCache() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}
	if value, ok := os.LookupEnv("MARQUEE_CACHE_PATH"); ok && strings.TrimSpace(value) != "" {
		c.Cache.Path = value
	}
	c.Cache.Path = strings.TrimSpace(c.Cache.Path)
	if c.Cache.Path == "" || (c.Cache.Backend == CacheBackendFile && c.Cache.Path == defaultCachePath(CacheBackendSQLite)) {
		c.Cache.Path = defaultCachePath(c.Cache.Backend)
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	if c.Cache.TTLMinutes <= 0 {
		c.Cache.TTLMinutes = defaultCacheTTLMinutes
	}
	kinds := make([]string, 0, len(c.Cache.StaleFallback))
	seen := make(map[string]struct{}, len(c.Cache.StaleFallback))
	for _, kind := range c.Cache.StaleFallback {
		normalized := strings.ToLower(strings.TrimSpace(kind))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		kinds = append(kinds, normalized)
	}
	c.Cache.StaleFallback = kinds
	return nil
}

func (c *Config) normalizeCatalog() {
	c.Catalog.DefaultTitle = strings.TrimSpace(c.Catalog.DefaultTitle)
	if c.Catalog.DefaultTitle == "" {
		c.Catalog.DefaultTitle = defaultTitle
	}
	c.Catalog.DefaultQuality = strings.TrimSpace(c.Catalog.DefaultQuality)
	if c.Catalog.DefaultQuality == "" {
		c.Catalog.DefaultQuality = defaultQuality
	}
	c.Catalog.DefaultLanguage = strings.TrimSpace(c.Catalog.DefaultLanguage)
	if c.Catalog.DefaultLanguage == "" {
		c.Catalog.DefaultLanguage = defaultLanguage
	}
	countries := make([]string, 0, len(c.Catalog.HomeCountries))
	for _, country := range c.Catalog.HomeCountries {
		if trimmed := strings.ToLower(strings.TrimSpace(country)); trimmed != "" {
			countries = append(countries, trimmed)
		}
	}
	c.Catalog.HomeCountries = countries
	if c.Catalog.FanoutConcurrency <= 0 {
		c.Catalog.FanoutConcurrency = defaultFanoutConcurrency
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
