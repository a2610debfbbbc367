package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"marquee/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckUpstream_OK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	result := CheckUpstream(context.Background(), srv.URL+"/", "marquee-test")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if gotUA != "marquee-test" {
		t.Fatalf("user agent = %q", gotUA)
	}
}

func TestCheckUpstream_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	result := CheckUpstream(context.Background(), srv.URL, "")
	if result.Passed {
		t.Fatal("expected failure for 502")
	}
	if !strings.Contains(result.Detail, "502") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckUpstream_MissingURL(t *testing.T) {
	result := CheckUpstream(context.Background(), "  ", "")
	if result.Passed {
		t.Fatal("expected failure for empty url")
	}
}

func TestCheckUpstream_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	result := CheckUpstream(context.Background(), url, "")
	if result.Passed {
		t.Fatal("expected failure for closed server")
	}
}

func TestRunAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Upstream.BaseURL = srv.URL
	cfg.Cache.Path = filepath.Join(t.TempDir(), "cache.db")
	cfg.Logging.Dir = t.TempDir()

	results := RunAll(context.Background(), &cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d: %+v", len(results), results)
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}

func TestRunAll_MemoryBackendSkipsCacheDir(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Upstream.BaseURL = srv.URL
	cfg.Cache.Backend = config.CacheBackendMemory
	cfg.Cache.Path = "/nonexistent/cache.db"

	results := RunAll(context.Background(), &cfg)
	if len(results) != 1 || results[0].Name != "Catalog API" {
		t.Fatalf("unexpected results: %+v", results)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil, got %+v", results)
	}
}
