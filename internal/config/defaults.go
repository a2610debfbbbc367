package config

import "path/filepath"

const (
	CacheBackendSQLite = "sqlite"
	CacheBackendFile   = "file"
	CacheBackendMemory = "memory"
)

const (
	defaultUpstreamBaseURL   = "https://phimapi.com"
	defaultRequestTimeout    = 10
	defaultRetryAttempts     = 1
	defaultUserAgent         = "marquee/dev"
	defaultPageLimit         = 24
	defaultCDNHost           = "phimimg.com"
	defaultCDNBaseURL        = "https://phimimg.com"
	defaultPlaceholder       = "/assets/placeholder-poster.svg"
	defaultHighQuality       = 80
	defaultLowQuality        = 30
	defaultLowWidth          = 200
	defaultCacheBackend      = CacheBackendSQLite
	defaultCacheTTLMinutes   = 30
	defaultTitle             = "Không có tiêu đề"
	defaultQuality           = "HD"
	defaultLanguage          = "Vietsub"
	defaultFanoutConcurrency = 4
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Upstream: Upstream{
			BaseURL:        defaultUpstreamBaseURL,
			RequestTimeout: defaultRequestTimeout,
			RetryAttempts:  defaultRetryAttempts,
			UserAgent:      defaultUserAgent,
			PageLimit:      defaultPageLimit,
		},
		Images: Images{
			CDNHost:     defaultCDNHost,
			CDNBaseURL:  defaultCDNBaseURL,
			Placeholder: defaultPlaceholder,
			HighQuality: defaultHighQuality,
			LowQuality:  defaultLowQuality,
			LowWidth:    defaultLowWidth,
		},
		Cache: Cache{
			Enabled:       true,
			Backend:       defaultCacheBackend,
			Path:          defaultCachePath(defaultCacheBackend),
			TTLMinutes:    defaultCacheTTLMinutes,
			StaleFallback: []string{"country"},
		},
		Catalog: Catalog{
			DefaultTitle:      defaultTitle,
			DefaultQuality:    defaultQuality,
			DefaultLanguage:   defaultLanguage,
			HomeCountries:     []string{"han-quoc", "trung-quoc", "au-my"},
			FanoutConcurrency: defaultFanoutConcurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultCachePath(backend string) string {
	switch backend {
	case CacheBackendFile:
		return filepath.Join(defaultCacheDir(), "cache.json")
	default:
		return filepath.Join(defaultCacheDir(), "cache.db")
	}
}
