package envelope

import "marquee/internal/rawjson"

// Pagination describes the page window of a list response. All values are
// at least 1 except TotalItems, which is 0 for an empty list.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

var (
	currentPageKeys = []string{"currentPage", "current_page", "page"}
	totalPagesKeys  = []string{"totalPages", "total_pages"}
	totalItemsKeys  = []string{"totalItems", "total_items", "total_results"}
	perPageKeys     = []string{"totalItemsPerPage", "total_items_per_page", "per_page"}
)

func findPagination(body, container any, itemCount int) *Pagination {
	candidates := []any{}
	if container != nil {
		candidates = append(candidates,
			lookup(container, "pagination"),
			lookup(container, "params", "pagination"),
			container,
		)
	}
	candidates = append(candidates, lookup(body, "pagination"), lookup(body, "params", "pagination"))

	for _, candidate := range candidates {
		if p, ok := parsePagination(candidate, itemCount); ok {
			return p
		}
	}
	return nil
}

func lookup(v any, path ...string) any {
	found, _ := rawjson.Get(v, path...)
	return found
}

func parsePagination(v any, itemCount int) (*Pagination, bool) {
	obj, ok := rawjson.Object(v)
	if !ok {
		return nil, false
	}
	current, hasCurrent := firstInt(obj, currentPageKeys)
	pages, hasPages := firstInt(obj, totalPagesKeys)
	total, hasTotal := firstInt(obj, totalItemsKeys)
	if !hasCurrent && !hasPages && !hasTotal {
		return nil, false
	}
	perPage, _ := firstInt(obj, perPageKeys)

	p := &Pagination{CurrentPage: current, TotalPages: pages, TotalItems: total}
	if !hasTotal || p.TotalItems < 0 {
		p.TotalItems = itemCount
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.TotalPages < 1 {
		p.TotalPages = 1
		if perPage > 0 && p.TotalItems > 0 {
			p.TotalPages = (p.TotalItems + perPage - 1) / perPage
		}
	}
	return p, true
}

func firstInt(obj map[string]any, keys []string) (int, bool) {
	for _, key := range keys {
		if n, ok := rawjson.Int(obj[key]); ok {
			return n, true
		}
	}
	return 0, false
}
