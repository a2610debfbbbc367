package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"marquee/internal/config"
	"marquee/internal/logging"
	"marquee/internal/ttlcache"
)

var (
	ErrCacheDisabled      = errors.New("list cache is disabled")
	ErrCacheNotConfigured = errors.New("list cache path is not configured")
)

// CacheHandle is an opened list cache together with its backing store.
type CacheHandle struct {
	*ttlcache.TTLCache
	Backend string
	Path    string
	store   ttlcache.Store
}

// Close releases the backing store when it holds resources.
func (h *CacheHandle) Close() error {
	if h == nil {
		return nil
	}
	if closer, ok := h.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// OpenCache validates config and opens the configured cache backend.
func OpenCache(cfg *config.Config, logger *slog.Logger) (*CacheHandle, error) {
	if cfg == nil || !cfg.Cache.Enabled {
		return nil, ErrCacheDisabled
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	backend := cfg.Cache.Backend
	path := strings.TrimSpace(cfg.Cache.Path)

	var (
		store ttlcache.Store
		err   error
	)
	switch backend {
	case config.CacheBackendMemory:
		store = ttlcache.NewMemoryStore()
		path = ""
	case config.CacheBackendFile:
		if path == "" {
			return nil, ErrCacheNotConfigured
		}
		store, err = ttlcache.NewFileStore(path)
	case config.CacheBackendSQLite, "":
		if path == "" {
			return nil, ErrCacheNotConfigured
		}
		backend = config.CacheBackendSQLite
		store, err = ttlcache.OpenSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", backend, err)
	}

	cache := ttlcache.New(store,
		ttlcache.WithTTL(cfg.CacheTTL()),
		ttlcache.WithLogger(logger),
	)
	return &CacheHandle{TTLCache: cache, Backend: backend, Path: path, store: store}, nil
}
