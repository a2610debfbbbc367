// Package rawjson provides nil-safe accessors over decoded JSON values
// (map[string]any, []any, string, float64, json.Number, bool).
//
// Every accessor reports presence with a boolean instead of panicking, so
// callers can walk payloads of unknown shape and fall back cleanly.
package rawjson

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Object returns v as a JSON object.
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// Array returns v as a JSON array. A nil slice is not an array.
func Array(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok && a != nil
}

// Get walks nested objects along path. Get(v) returns v itself.
func Get(v any, path ...string) (any, bool) {
	current := v
	for _, key := range path {
		obj, ok := Object(current)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, current != nil
}

// ObjectAt returns the object found at path.
func ObjectAt(v any, path ...string) (map[string]any, bool) {
	found, ok := Get(v, path...)
	if !ok {
		return nil, false
	}
	return Object(found)
}

// ArrayAt returns the array found at path.
func ArrayAt(v any, path ...string) ([]any, bool) {
	found, ok := Get(v, path...)
	if !ok {
		return nil, false
	}
	return Array(found)
}

// String returns v as a trimmed, non-empty string. Numbers are formatted
// without exponent so identifiers survive.
func String(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case json.Number:
		s := strings.TrimSpace(val.String())
		return s, s != ""
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	default:
		return "", false
	}
}

// Number returns v as a float64. Numeric strings are coerced; anything else
// reports false.
func Number(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int returns v as an integer when it is a whole number or an integer string.
func Int(v any) (int, bool) {
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
