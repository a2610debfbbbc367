package ttlcache

import (
	"encoding/json"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type payload struct {
	Items []string `json:"items"`
	Page  int      `json:"page"`
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func TestCacheRoundTripAndExpiry(t *testing.T) {
	clock := newClock()
	cache := New(NewMemoryStore(), WithClock(clock.Now))

	want := payload{Items: []string{"a", "b"}, Page: 2}
	cache.Set("cache_country_han-quoc", want)

	var got payload
	if !cache.GetInto("cache_country_han-quoc", &got) {
		t.Fatal("expected hit immediately after Set")
	}
	if got.Page != want.Page || len(got.Items) != 2 || got.Items[1] != "b" {
		t.Fatalf("payload = %+v, want %+v", got, want)
	}

	clock.Advance(29*time.Minute + 59*time.Second)
	if _, ok := cache.Get("cache_country_han-quoc"); !ok {
		t.Fatal("expected hit just before expiry")
	}

	clock.Advance(time.Second)
	if _, ok := cache.Get("cache_country_han-quoc"); ok {
		t.Fatal("expected miss at exactly the TTL")
	}

	clock.Advance(time.Hour)
	data, written, ok := cache.GetStale("cache_country_han-quoc")
	if !ok || len(data) == 0 {
		t.Fatal("expected stale read to return the expired payload")
	}
	if !written.Equal(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("written at = %v", written)
	}
}

func TestCacheOverwriteRefreshesTimestamp(t *testing.T) {
	clock := newClock()
	cache := New(NewMemoryStore(), WithClock(clock.Now), WithTTL(time.Minute))
	cache.Set("k", 1)
	clock.Advance(50 * time.Second)
	cache.Set("k", 2)
	clock.Advance(50 * time.Second)

	data, ok := cache.Get("k")
	if !ok || string(data) != "2" {
		t.Fatalf("Get = %s, %v; want 2, true", data, ok)
	}
}

func TestStoredFormat(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore()
	cache := New(store, WithClock(clock.Now))
	cache.Set("cache_anime_all", []int{1, 2})

	raw, ok, err := store.Load("cache_anime_all")
	if err != nil || !ok {
		t.Fatalf("Load = %v, %v", ok, err)
	}
	var stored map[string]json.RawMessage
	if err := json.Unmarshal(raw, &stored); err != nil {
		t.Fatalf("stored value is not JSON: %v", err)
	}
	if string(stored["data"]) != "[1,2]" {
		t.Fatalf("data = %s", stored["data"])
	}
	if string(stored["timestamp"]) != "1777636800000" {
		t.Fatalf("timestamp = %s", stored["timestamp"])
	}
}

type brokenStore struct{}

var errBroken = errors.New("storage unavailable")

func (brokenStore) Load(string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenStore) Save(string, []byte) error         { return errBroken }
func (brokenStore) Delete(string) error               { return errBroken }
func (brokenStore) Keys() ([]string, error)           { return nil, errBroken }
func (brokenStore) Clear() error                      { return errBroken }

func TestStorageFailureIsMiss(t *testing.T) {
	cache := New(brokenStore{})
	cache.Set("k", "v")
	if _, ok := cache.Get("k"); ok {
		t.Fatal("expected miss from failing store")
	}
	if _, _, ok := cache.GetStale("k"); ok {
		t.Fatal("expected stale miss from failing store")
	}
	if err := cache.Clear(); !errors.Is(err, errBroken) {
		t.Fatalf("Clear error = %v", err)
	}
}

func TestUnencodablePayloadIsDropped(t *testing.T) {
	store := NewMemoryStore()
	cache := New(store)
	cache.Set("k", make(chan int))
	if keys, _ := store.Keys(); len(keys) != 0 {
		t.Fatalf("keys = %v, want none", keys)
	}
}

func TestCorruptEntryIsMiss(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Save("k", []byte("{not json"))
	_ = store.Save("j", []byte(`{"timestamp":1}`))
	cache := New(store)
	if _, ok := cache.Get("k"); ok {
		t.Fatal("expected miss for corrupt entry")
	}
	if _, ok := cache.Get("j"); ok {
		t.Fatal("expected miss for entry without data")
	}
	var v payload
	_ = store.Save("p", []byte(`{"data":"text","timestamp":`+jsonNow()+`}`))
	if cache.GetInto("p", &v) {
		t.Fatal("expected GetInto miss for mismatched payload")
	}
}

func jsonNow() string {
	b, _ := json.Marshal(time.Now().UnixMilli())
	return string(b)
}

func TestEntries(t *testing.T) {
	clock := newClock()
	cache := New(NewMemoryStore(), WithClock(clock.Now))
	cache.Set("old", "x")
	clock.Advance(40 * time.Minute)
	cache.Set("new", "yy")

	entries, err := cache.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Key != "new" || !entries[0].Fresh || entries[0].Size != 4 {
		t.Fatalf("newest entry = %+v", entries[0])
	}
	if entries[1].Key != "old" || entries[1].Fresh || entries[1].Age != 40*time.Minute {
		t.Fatalf("oldest entry = %+v", entries[1])
	}
}

func TestKey(t *testing.T) {
	if got := Key("country", "han-quoc", nil); got != "cache_country_han-quoc" {
		t.Fatalf("Key = %q", got)
	}
	a := Key("category", "hanh-dong", url.Values{"page": {"2"}, "limit": {"24"}})
	b := Key("category", "hanh-dong", url.Values{"limit": {"24"}, "page": {"2"}})
	c := Key("category", "hanh-dong", url.Values{"page": {"3"}, "limit": {"24"}})
	if a != b {
		t.Fatalf("param order changed key: %q vs %q", a, b)
	}
	if a == c {
		t.Fatal("different params produced the same key")
	}
	if !strings.HasPrefix(a, "cache_category_hanh-dong_") || len(a) != len("cache_category_hanh-dong_")+16 {
		t.Fatalf("unexpected key shape %q", a)
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	clock := newClock()
	cache := New(store, WithClock(clock.Now))

	cache.Set("cache_country_au-my", payload{Items: []string{"x"}, Page: 1})
	cache.Set("cache_anime_all", payload{Page: 3})

	var got payload
	if !cache.GetInto("cache_country_au-my", &got) || got.Items[0] != "x" {
		t.Fatalf("round trip failed: %+v", got)
	}
	keys, err := store.Keys()
	if err != nil || len(keys) != 2 || keys[0] != "cache_anime_all" {
		t.Fatalf("Keys = %v, %v", keys, err)
	}
	if err := cache.Delete("cache_anime_all"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := cache.Get("cache_anime_all"); ok {
		t.Fatal("expected miss after delete")
	}
	clock.Advance(31 * time.Minute)
	if _, ok := cache.Get("cache_country_au-my"); ok {
		t.Fatal("expected miss after expiry")
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if keys, _ := store.Keys(); len(keys) != 0 {
		t.Fatalf("keys after clear = %v", keys)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	exerciseStore(t, store)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	New(first).Set("k", "v")

	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	data, ok := New(second).Get("k")
	if !ok || string(data) != `"v"` {
		t.Fatalf("Get = %s, %v", data, ok)
	}
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	exerciseStore(t, store)
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore: %v", err)
	}
	New(store).Set("k", map[string]int{"n": 1})
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	data, ok := New(reopened).Get("k")
	if !ok || string(data) != `{"n":1}` {
		t.Fatalf("Get = %s, %v", data, ok)
	}
}
