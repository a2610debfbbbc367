package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"marquee/internal/catalog"
	"marquee/internal/config"
	"marquee/internal/envelope"
	"marquee/internal/episodes"
	"marquee/internal/logging"
	"marquee/internal/services"
	"marquee/internal/ttlcache"
	"marquee/internal/upstream"
)

// Fetcher abstracts the upstream calls the catalog service needs.
type Fetcher interface {
	List(ctx context.Context, q upstream.ListQuery) (any, error)
	Detail(ctx context.Context, slug string) (any, error)
}

// staleReader is implemented by caches that can return expired entries.
type staleReader interface {
	GetStale(key string) (json.RawMessage, time.Time, bool)
}

// CatalogService serves normalized lists and title details, consulting the
// list cache for cacheable resource kinds.
type CatalogService struct {
	client        Fetcher
	cache         ttlcache.Cache
	normalizer    *catalog.Normalizer
	logger        *slog.Logger
	staleFallback map[upstream.ResourceKind]bool
	pageLimit     int
	concurrency   int
	homeCountries []string
}

// NewCatalogService wires the service from configuration. cache may be nil
// to disable caching.
func NewCatalogService(cfg *config.Config, client Fetcher, cache ttlcache.Cache, logger *slog.Logger) *CatalogService {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	svc := &CatalogService{
		client:        client,
		cache:         cache,
		normalizer:    catalog.NewNormalizer(cfg, logger),
		logger:        logging.NewComponentLogger(logger, "catalog_service"),
		staleFallback: make(map[upstream.ResourceKind]bool),
		pageLimit:     cfg.Upstream.PageLimit,
		concurrency:   cfg.Catalog.FanoutConcurrency,
		homeCountries: append([]string(nil), cfg.Catalog.HomeCountries...),
	}
	for _, kind := range upstream.Kinds {
		if cfg.StaleFallbackAllowed(string(kind)) {
			svc.staleFallback[kind] = true
		}
	}
	if svc.concurrency <= 0 {
		svc.concurrency = 1
	}
	return svc
}

// Normalizer exposes the configured normalizer.
func (s *CatalogService) Normalizer() *catalog.Normalizer {
	return s.normalizer
}

// HomeQueries returns the country list queries shown on the home view.
func (s *CatalogService) HomeQueries() []upstream.ListQuery {
	queries := make([]upstream.ListQuery, 0, len(s.homeCountries))
	for _, country := range s.homeCountries {
		if country = strings.TrimSpace(country); country != "" {
			queries = append(queries, upstream.ListQuery{Kind: upstream.KindCountry, ID: country, Page: 1})
		}
	}
	return queries
}

// List returns one normalized page. Cacheable kinds are served from a fresh
// cache entry when present; a failed refresh falls back to a stale entry
// only for kinds configured to allow it.
func (s *CatalogService) List(ctx context.Context, q upstream.ListQuery) (ListResult, error) {
	if q.Limit <= 0 {
		q.Limit = s.pageLimit
	}
	ctx = services.WithResource(ctx, q.Label())
	logger := logging.WithContext(ctx, s.logger)

	var key string
	if s.cache != nil && q.Kind.Cacheable() {
		key = ttlcache.Key(string(q.Kind), q.CacheID(), q.Params())
		if data, ok := s.cache.Get(key); ok {
			if page, ok := decodePage(data); ok {
				logger.Debug("list served from cache", logging.String(logging.FieldCacheKey, key))
				return newListResult(q, page, true), nil
			}
		}
	}

	body, err := s.client.List(ctx, q)
	if err != nil {
		if result, ok := s.staleResult(q, key); ok {
			logging.WarnWithContext(logger, "serving stale list after refresh failure", "list_stale_fallback",
				logging.Error(err),
				logging.String(logging.FieldCacheKey, key),
				logging.String(logging.FieldErrorHint, "check connectivity to the catalog service"),
				logging.String(logging.FieldImpact, "list may be out of date"),
			)
			return result, nil
		}
		return ListResult{}, err
	}

	page := s.normalizer.Page(body)
	if key != "" {
		s.cache.Set(key, page)
	}
	return newListResult(q, page, false), nil
}

func (s *CatalogService) staleResult(q upstream.ListQuery, key string) (ListResult, bool) {
	if key == "" || !s.staleFallback[q.Kind] {
		return ListResult{}, false
	}
	reader, ok := s.cache.(staleReader)
	if !ok {
		return ListResult{}, false
	}
	data, written, ok := reader.GetStale(key)
	if !ok {
		return ListResult{}, false
	}
	page, ok := decodePage(data)
	if !ok {
		return ListResult{}, false
	}
	result := newListResult(q, page, true)
	result.Stale = true
	result.StaleSince = &written
	return result, true
}

func decodePage(data json.RawMessage) (catalog.Page, bool) {
	var page catalog.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return catalog.Page{}, false
	}
	if page.Items == nil {
		page.Items = []catalog.Item{}
	}
	return page, true
}

func newListResult(q upstream.ListQuery, page catalog.Page, cached bool) ListResult {
	return ListResult{
		Kind:       q.Kind,
		ID:         q.ID,
		Items:      page.Items,
		Pagination: page.Pagination,
		Cached:     cached,
	}
}

// Title fetches a title detail and resolves its episodes. A title without
// episodes is not an error.
func (s *CatalogService) Title(ctx context.Context, slug, requestedEpisode string) (TitleView, error) {
	ctx = services.WithResource(ctx, "title/"+slug)
	body, err := s.client.Detail(ctx, slug)
	if err != nil {
		return TitleView{}, err
	}
	detail, ok := envelope.UnwrapDetail(body)
	if !ok {
		return TitleView{}, services.Wrap(services.ErrNotFound, "catalog_service", "title", "response carried no title for "+slug, nil)
	}
	view := TitleView{
		Item:     s.normalizer.Normalize(detail.Movie),
		Episodes: episodes.ResolveDetail(detail, requestedEpisode),
	}
	if view.Episodes.Initial == nil {
		logging.WithContext(ctx, s.logger).Info("title has no playable episodes yet",
			logging.String("slug", slug))
	}
	return view, nil
}
