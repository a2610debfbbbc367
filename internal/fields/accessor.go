package fields

import (
	"marquee/internal/rawjson"
)

// Accessor reads one candidate value from a raw item and reports whether it
// was present and usable.
type Accessor[T any] func(raw map[string]any) (T, bool)

// FirstOf combines accessors so the first one that reports a value wins.
func FirstOf[T any](accessors ...Accessor[T]) Accessor[T] {
	return func(raw map[string]any) (T, bool) {
		for _, access := range accessors {
			if v, ok := access(raw); ok {
				return v, true
			}
		}
		var zero T
		return zero, false
	}
}

// Or resolves the accessor and substitutes fallback when nothing is present.
func (a Accessor[T]) Or(raw map[string]any, fallback T) T {
	if v, ok := a(raw); ok {
		return v
	}
	return fallback
}

// Where keeps a resolved value only if keep accepts it.
func (a Accessor[T]) Where(keep func(T) bool) Accessor[T] {
	return func(raw map[string]any) (T, bool) {
		v, ok := a(raw)
		if !ok || !keep(v) {
			var zero T
			return zero, false
		}
		return v, true
	}
}

// StringAt reads a non-blank string (or a number formatted as one) at path.
func StringAt(path ...string) Accessor[string] {
	return func(raw map[string]any) (string, bool) {
		v, ok := rawjson.Get(raw, path...)
		if !ok {
			return "", false
		}
		return rawjson.String(v)
	}
}

// NumberAt reads a number at path, coercing numeric strings.
func NumberAt(path ...string) Accessor[float64] {
	return func(raw map[string]any) (float64, bool) {
		v, ok := rawjson.Get(raw, path...)
		if !ok {
			return 0, false
		}
		return rawjson.Number(v)
	}
}

// ValueAt reads any non-empty value at path. Blank strings, empty arrays and
// empty objects count as absent.
func ValueAt(path ...string) Accessor[any] {
	return func(raw map[string]any) (any, bool) {
		v, ok := rawjson.Get(raw, path...)
		if !ok {
			return nil, false
		}
		switch val := v.(type) {
		case string:
			_, ok = rawjson.String(val)
			return v, ok
		case []any:
			return v, len(val) > 0
		case map[string]any:
			return v, len(val) > 0
		}
		return v, true
	}
}

func stringsAt(keys ...string) []Accessor[string] {
	out := make([]Accessor[string], 0, len(keys))
	for _, key := range keys {
		out = append(out, StringAt(key))
	}
	return out
}
