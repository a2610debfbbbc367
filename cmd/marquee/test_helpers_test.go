package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

const countryPayload = `{
  "status": "success",
  "data": {
    "items": [
      {"_id": "a1", "name": "Phim A", "origin_name": "Movie A", "slug": "phim-a", "year": 2024,
       "poster_url": "upload/vod/a.jpg", "episode_current": "Tập 5/16", "lang": "Vietsub", "quality": "FHD", "type": "series"},
      {"_id": "b2", "name": "", "slug": "", "year": "2019-05-01"}
    ],
    "params": {"pagination": {"currentPage": 1, "totalPages": 3, "totalItems": 50}}
  }
}`

const searchPayload = `{"data": {"items": [{"name": "Tìm Thấy", "slug": "tim-thay"}]}}`

const detailPayload = `{
  "status": true,
  "movie": {"name": "Phim A", "slug": "phim-a", "episode_current": "Tập 2", "year": 2024, "type": "series"},
  "episodes": [
    {"server_name": "#Hà Nội", "server_data": [
      {"name": "Tập 1", "slug": "tap-1", "link_embed": "https://player.example/1", "link_m3u8": "https://cdn.example/1.m3u8"},
      {"name": "Tập 2", "slug": "tap-2", "link_embed": "https://player.example/2"},
      {"name": "Tập 3", "slug": "tap-3", "link_embed": "https://player.example/3"}
    ]}
  ]
}`

type cliTestEnv struct {
	server     *httptest.Server
	configPath string
	cachePath  string
	baseDir    string
	hits       *atomic.Int64
}

type envOption func(*envSettings)

type envSettings struct {
	backend string
}

func withBackend(backend string) envOption {
	return func(s *envSettings) { s.backend = backend }
}

func setupCLITestEnv(t *testing.T, opts ...envOption) *cliTestEnv {
	t.Helper()

	settings := envSettings{backend: "file"}
	for _, opt := range opts {
		opt(&settings)
	}

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("MARQUEE_API_BASE_URL", "")
	t.Setenv("MARQUEE_CACHE_PATH", "")

	hits := new(atomic.Int64)
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/api/quoc-gia/han-quoc", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, countryPayload)
	})
	mux.HandleFunc("/v1/api/quoc-gia/trung-quoc", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/v1/api/tim-kiem", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("keyword") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, searchPayload)
	})
	mux.HandleFunc("/phim/phim-a", func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, detailPayload)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	cachePath := filepath.Join(base, "cache", "cache.json")
	if settings.backend == "sqlite" {
		cachePath = filepath.Join(base, "cache", "cache.db")
	}
	configPath := filepath.Join(base, "marquee.toml")
	content := fmt.Sprintf(`[upstream]
base_url = %q
request_timeout = 5
retry_attempts = 1

[cache]
enabled = true
backend = %q
path = %q
stale_fallback = ["country"]

[catalog]
home_countries = ["han-quoc", "trung-quoc"]
fanout_concurrency = 2

[logging]
level = "error"
`, srv.URL, settings.backend, cachePath)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &cliTestEnv{
		server:     srv,
		configPath: configPath,
		cachePath:  cachePath,
		baseDir:    base,
		hits:       hits,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
