package upstream

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ResourceKind names a list endpoint family.
type ResourceKind string

const (
	KindCategory ResourceKind = "category"
	KindCountry  ResourceKind = "country"
	KindAnime    ResourceKind = "anime"
	KindList     ResourceKind = "list"
	KindLatest   ResourceKind = "latest"
	KindSearch   ResourceKind = "search"
)

// Kinds lists every list resource in display order.
var Kinds = []ResourceKind{KindCategory, KindCountry, KindAnime, KindList, KindLatest, KindSearch}

// ParseKind validates a resource kind name.
func ParseKind(value string) (ResourceKind, error) {
	kind := ResourceKind(strings.ToLower(strings.TrimSpace(value)))
	for _, k := range Kinds {
		if k == kind {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown resource kind %q", value)
}

// Cacheable reports whether responses for the kind go through the list cache.
func (k ResourceKind) Cacheable() bool {
	switch k {
	case KindCategory, KindCountry, KindAnime:
		return true
	default:
		return false
	}
}

// NeedsID reports whether the kind requires an identifier.
func (k ResourceKind) NeedsID() bool {
	switch k {
	case KindCategory, KindCountry, KindList, KindSearch:
		return true
	default:
		return false
	}
}

// ListQuery identifies one page of a list resource. ID carries the keyword
// for searches.
type ListQuery struct {
	Kind  ResourceKind
	ID    string
	Page  int
	Limit int
}

// Label is a short "kind/id" description used in logs and cache keys.
func (q ListQuery) Label() string {
	if q.ID == "" {
		return string(q.Kind)
	}
	return string(q.Kind) + "/" + q.ID
}

// CacheID is the resource id used in cache keys.
func (q ListQuery) CacheID() string {
	if q.ID == "" {
		return "all"
	}
	return q.ID
}

// Params returns the query parameters sent upstream.
func (q ListQuery) Params() url.Values {
	params := url.Values{}
	if q.Kind == KindSearch {
		params.Set("keyword", strings.TrimSpace(q.ID))
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params
}

func (q ListQuery) path() (string, error) {
	id := url.PathEscape(strings.TrimSpace(q.ID))
	if q.Kind.NeedsID() && id == "" {
		return "", fmt.Errorf("%s requires an id", q.Kind)
	}
	switch q.Kind {
	case KindCategory:
		return "/v1/api/the-loai/" + id, nil
	case KindCountry:
		return "/v1/api/quoc-gia/" + id, nil
	case KindAnime:
		return "/v1/api/danh-sach/hoat-hinh", nil
	case KindList:
		return "/v1/api/danh-sach/" + id, nil
	case KindLatest:
		return "/danh-sach/phim-moi-cap-nhat", nil
	case KindSearch:
		return "/v1/api/tim-kiem", nil
	default:
		return "", fmt.Errorf("unknown resource kind %q", q.Kind)
	}
}
