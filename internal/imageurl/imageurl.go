package imageurl

import (
	"net/url"
	"strconv"
	"strings"

	"marquee/internal/rawjson"
)

const (
	DefaultCDNHost     = "phimimg.com"
	DefaultCDNBaseURL  = "https://phimimg.com"
	DefaultPlaceholder = "/assets/placeholder-poster.svg"
	DefaultHighQuality = 80
	DefaultLowQuality  = 30
	DefaultLowWidth    = 200
)

// sizeKeys are the object keys tried, in order, when an image is given as a
// set of renditions.
var sizeKeys = []string{"original", "large", "medium", "small", "full"}

// Pair holds the two renditions of one image. Neither is ever empty.
type Pair struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// Resolver derives CDN rendition URLs. Zero fields take the package defaults.
type Resolver struct {
	CDNHost     string
	CDNBaseURL  string
	Placeholder string
	HighQuality int
	LowQuality  int
	LowWidth    int
}

// Default returns a resolver with the upstream CDN settings.
func Default() Resolver {
	return Resolver{}.withDefaults()
}

func (r Resolver) withDefaults() Resolver {
	if r.CDNHost == "" {
		r.CDNHost = DefaultCDNHost
	}
	if r.CDNBaseURL == "" {
		r.CDNBaseURL = "https://" + r.CDNHost
	}
	r.CDNBaseURL = strings.TrimRight(r.CDNBaseURL, "/")
	if r.Placeholder == "" {
		r.Placeholder = DefaultPlaceholder
	}
	if r.HighQuality <= 0 {
		r.HighQuality = DefaultHighQuality
	}
	if r.LowQuality <= 0 {
		r.LowQuality = DefaultLowQuality
	}
	if r.LowWidth <= 0 {
		r.LowWidth = DefaultLowWidth
	}
	return r
}

// PlaceholderPair returns the pair used when no image is available.
func (r Resolver) PlaceholderPair() Pair {
	r = r.withDefaults()
	return Pair{Low: r.Placeholder, High: r.Placeholder}
}

// Resolve turns a raw path, URL, or rendition object into a low/high pair.
// Unusable input yields the placeholder for both.
func (r Resolver) Resolve(v any) Pair {
	r = r.withDefaults()
	source, ok := extract(v, 1)
	if !ok || source == r.Placeholder {
		return r.PlaceholderPair()
	}

	switch {
	case strings.HasPrefix(source, "//"):
		source = "https:" + source
	case hasPrefixFold(source, "http://"):
		source = "https://" + source[len("http://"):]
	}

	if hasPrefixFold(source, "https://") {
		base := "https://" + stripQuery(source[len("https://"):])
		u, err := url.Parse(base)
		if err != nil || u.Host == "" {
			return r.PlaceholderPair()
		}
		if !r.isCDN(u.Hostname()) {
			return Pair{Low: base, High: base}
		}
		return r.variants(base)
	}

	if hasPrefixFold(source, "data:") {
		return Pair{Low: source, High: source}
	}
	return r.variants(r.cdnURL(source))
}

func (r Resolver) isCDN(host string) bool {
	host = strings.ToLower(host)
	cdn := strings.ToLower(r.CDNHost)
	return host == cdn || strings.HasSuffix(host, "."+cdn)
}

// cdnURL maps a relative upload path onto the CDN base.
func (r Resolver) cdnURL(path string) string {
	path = strings.TrimLeft(stripQuery(path), "/")
	path = strings.TrimPrefix(path, "upload/")
	return r.CDNBaseURL + "/upload/" + path
}

func (r Resolver) variants(base string) Pair {
	high := url.Values{}
	high.Set("quality", strconv.Itoa(r.HighQuality))
	low := url.Values{}
	low.Set("quality", strconv.Itoa(r.LowQuality))
	low.Set("width", strconv.Itoa(r.LowWidth))
	return Pair{
		Low:  base + "?" + low.Encode(),
		High: base + "?" + high.Encode(),
	}
}

// extract reduces v to a single path string, descending at most depth levels
// into rendition objects and arrays.
func extract(v any, depth int) (string, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "undefined") {
			return "", false
		}
		return s, true
	}
	if depth < 0 {
		return "", false
	}
	if obj, ok := rawjson.Object(v); ok {
		for _, key := range sizeKeys {
			if s, ok := extract(obj[key], depth-1); ok {
				return s, true
			}
		}
		return "", false
	}
	if arr, ok := rawjson.Array(v); ok && len(arr) > 0 {
		return extract(arr[0], depth-1)
	}
	return "", false
}

func stripQuery(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
