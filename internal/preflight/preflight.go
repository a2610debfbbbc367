package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"marquee/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Cache directory (persistent backends only)
	if cfg.Cache.Enabled && cfg.Cache.Backend != config.CacheBackendMemory && strings.TrimSpace(cfg.Cache.Path) != "" {
		results = append(results, CheckDirectoryAccess("Cache directory", filepath.Dir(cfg.Cache.Path)))
	}

	// Log directory (when configured)
	if strings.TrimSpace(cfg.Logging.Dir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	results = append(results, CheckUpstream(ctx, cfg.Upstream.BaseURL, cfg.Upstream.UserAgent))
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
