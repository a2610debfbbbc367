package envelope

import "marquee/internal/rawjson"

// Detail is a movie detail payload with its episode collection, if any,
// pulled out of whichever envelope the upstream used.
type Detail struct {
	Movie    map[string]any
	Episodes any
}

// UnwrapDetail locates the movie object inside a detail response. The first
// location that matches wins; ok is false when no movie object is found.
func UnwrapDetail(body any) (Detail, bool) {
	if movie, ok := rawjson.ObjectAt(body, "movie"); ok {
		return Detail{Movie: movie, Episodes: firstPresent(lookup(body, "episodes"), movie["episodes"])}, true
	}
	if movie, ok := rawjson.ObjectAt(body, "data", "item"); ok {
		return Detail{Movie: movie, Episodes: firstPresent(movie["episodes"], lookup(body, "data", "episodes"))}, true
	}
	if movie, ok := rawjson.ObjectAt(body, "data"); ok && identifiable(movie, "name", "slug", "title") {
		return Detail{Movie: movie, Episodes: movie["episodes"]}, true
	}
	if movie, ok := rawjson.ObjectAt(body, "item"); ok {
		return Detail{Movie: movie, Episodes: firstPresent(movie["episodes"], lookup(body, "episodes"))}, true
	}
	if movie, ok := rawjson.Object(body); ok && identifiable(movie, "slug", "name") {
		return Detail{Movie: movie, Episodes: movie["episodes"]}, true
	}
	return Detail{}, false
}

func identifiable(obj map[string]any, keys ...string) bool {
	for _, key := range keys {
		if _, ok := rawjson.String(obj[key]); ok {
			return true
		}
	}
	return false
}

func firstPresent(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}
