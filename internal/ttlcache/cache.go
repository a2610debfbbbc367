package ttlcache

import (
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"marquee/internal/logging"
)

// DefaultTTL is how long a list response stays fresh.
const DefaultTTL = 30 * time.Minute

// Cache is the read-through contract call sites depend on. Get and Set never
// surface storage failures; they degrade to a miss and a dropped write.
type Cache interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, payload any)
	Clear() error
}

// entry is the persisted value format: the payload plus its write time in
// epoch milliseconds.
type entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// EntryInfo describes one stored entry for inspection.
type EntryInfo struct {
	Key       string        `json:"key"`
	WrittenAt time.Time     `json:"writtenAt"`
	Age       time.Duration `json:"age"`
	Fresh     bool          `json:"fresh"`
	Size      int           `json:"size"`
}

// TTLCache applies expiry on top of a Store.
type TTLCache struct {
	store  Store
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a TTLCache.
type Option func(*TTLCache)

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *TTLCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(c *TTLCache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a logger for debug-level failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *TTLCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New wraps store with TTL semantics.
func New(store Store, opts ...Option) *TTLCache {
	c := &TTLCache{
		store:  store,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "ttlcache")
	return c
}

// TTL reports the configured freshness window.
func (c *TTLCache) TTL() time.Duration {
	return c.ttl
}

// Get returns the payload stored under key when it is younger than the TTL.
func (c *TTLCache) Get(key string) (json.RawMessage, bool) {
	e, ok := c.load(key)
	if !ok {
		return nil, false
	}
	if !c.fresh(e) {
		c.logger.Debug("cache entry expired", logging.String(logging.FieldCacheKey, key))
		return nil, false
	}
	return e.Data, true
}

// GetInto decodes a fresh payload into v. A payload that does not decode is
// a miss.
func (c *TTLCache) GetInto(key string, v any) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		c.logger.Debug("cache payload decode failed",
			logging.String(logging.FieldCacheKey, key),
			logging.Error(err))
		return false
	}
	return true
}

// GetStale returns the payload regardless of age, with its write time. Call
// sites use it to serve old data when a refresh fails.
func (c *TTLCache) GetStale(key string) (json.RawMessage, time.Time, bool) {
	e, ok := c.load(key)
	if !ok {
		return nil, time.Time{}, false
	}
	return e.Data, time.UnixMilli(e.Timestamp), true
}

// Set stores payload under key stamped with the current time. Failures are
// logged and dropped.
func (c *TTLCache) Set(key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		c.logger.Debug("cache payload encode failed",
			logging.String(logging.FieldCacheKey, key),
			logging.Error(err))
		return
	}
	raw, err := json.Marshal(entry{Data: data, Timestamp: c.now().UnixMilli()})
	if err != nil {
		c.logger.Debug("cache entry encode failed",
			logging.String(logging.FieldCacheKey, key),
			logging.Error(err))
		return
	}
	if err := c.store.Save(key, raw); err != nil {
		c.logger.Debug("cache write failed",
			logging.String(logging.FieldCacheKey, key),
			logging.Error(err))
	}
}

// Delete removes one entry.
func (c *TTLCache) Delete(key string) error {
	return c.store.Delete(key)
}

// Clear removes every entry.
func (c *TTLCache) Clear() error {
	return c.store.Clear()
}

// Entries lists stored entries, newest first. Unreadable entries are skipped.
func (c *TTLCache) Entries() ([]EntryInfo, error) {
	keys, err := c.store.Keys()
	if err != nil {
		return nil, err
	}
	now := c.now()
	infos := make([]EntryInfo, 0, len(keys))
	for _, key := range keys {
		e, ok := c.load(key)
		if !ok {
			continue
		}
		written := time.UnixMilli(e.Timestamp)
		infos = append(infos, EntryInfo{
			Key:       key,
			WrittenAt: written,
			Age:       now.Sub(written),
			Fresh:     c.fresh(e),
			Size:      len(e.Data),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].WrittenAt.After(infos[j].WrittenAt)
	})
	return infos, nil
}

func (c *TTLCache) fresh(e entry) bool {
	return c.now().UnixMilli()-e.Timestamp < c.ttl.Milliseconds()
}

func (c *TTLCache) load(key string) (entry, bool) {
	raw, ok, err := c.store.Load(key)
	if err != nil {
		c.logger.Debug("cache read failed",
			logging.String(logging.FieldCacheKey, key),
			logging.Error(err))
		return entry{}, false
	}
	if !ok {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil || len(e.Data) == 0 {
		c.logger.Debug("cache entry unreadable",
			logging.String(logging.FieldCacheKey, key),
			logging.Error(err))
		return entry{}, false
	}
	return e, true
}
