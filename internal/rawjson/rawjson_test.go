package rawjson

import (
	"encoding/json"
	"testing"
)

func TestGetWalksNestedObjects(t *testing.T) {
	body := map[string]any{"data": map[string]any{"params": map[string]any{"pagination": map[string]any{"totalPages": 3.0}}}}
	got, ok := Get(body, "data", "params", "pagination", "totalPages")
	if !ok || got != 3.0 {
		t.Fatalf("Get = %v %v", got, ok)
	}
	if _, ok := Get(body, "data", "missing"); ok {
		t.Fatal("expected missing key to report false")
	}
	if _, ok := Get([]any{1}, "data"); ok {
		t.Fatal("expected non-object to report false")
	}
	if _, ok := Get(map[string]any{"x": nil}, "x"); ok {
		t.Fatal("expected null to be absent")
	}
}

func TestStringAndNumberCoercion(t *testing.T) {
	if s, ok := String("  Phim A "); !ok || s != "Phim A" {
		t.Fatalf("String trimmed = %q %v", s, ok)
	}
	if _, ok := String("   "); ok {
		t.Fatal("expected blank string to be absent")
	}
	if s, ok := String(1622505600.0); !ok || s != "1622505600" {
		t.Fatalf("String(float) = %q %v", s, ok)
	}
	if f, ok := Number("7.5"); !ok || f != 7.5 {
		t.Fatalf("Number(string) = %v %v", f, ok)
	}
	if f, ok := Number(json.Number("8.1")); !ok || f != 8.1 {
		t.Fatalf("Number(json.Number) = %v %v", f, ok)
	}
	if _, ok := Number("HD"); ok {
		t.Fatal("expected non-numeric string to be rejected")
	}
	if _, ok := Number(true); ok {
		t.Fatal("expected bool to be rejected")
	}
}

func TestInt(t *testing.T) {
	if n, ok := Int("12"); !ok || n != 12 {
		t.Fatalf("Int(\"12\") = %d %v", n, ok)
	}
	if _, ok := Int(2.5); ok {
		t.Fatal("expected fractional value to be rejected")
	}
	if _, ok := Int(nil); ok {
		t.Fatal("expected nil to be rejected")
	}
}
