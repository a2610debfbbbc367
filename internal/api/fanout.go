package api

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"marquee/internal/upstream"
)

// Liveness tracks whether the consumer of a fan-out still wants results.
// Marking it dead suppresses callbacks without aborting in-flight requests.
type Liveness struct {
	dead atomic.Bool
}

func NewLiveness() *Liveness {
	return &Liveness{}
}

// Alive reports whether results should still be delivered. A nil Liveness is
// always alive.
func (l *Liveness) Alive() bool {
	return l == nil || !l.dead.Load()
}

// Release marks the consumer as gone.
func (l *Liveness) Release() {
	if l != nil {
		l.dead.Store(true)
	}
}

// FanOut runs the list queries concurrently, bounded by the configured
// concurrency. onSettled is called once per query as it settles, serially,
// and only while live is alive. The returned slice holds every result in
// query order once all fetches have settled.
func (s *CatalogService) FanOut(ctx context.Context, queries []upstream.ListQuery, live *Liveness, onSettled func(FanOutResult)) []FanOutResult {
	results := make([]FanOutResult, len(queries))
	var deliver sync.Mutex

	p := pool.New().WithMaxGoroutines(s.concurrency)
	for i, q := range queries {
		p.Go(func() {
			result, err := s.List(ctx, q)
			settled := FanOutResult{Query: q, Result: result, Err: err}
			results[i] = settled
			if onSettled == nil {
				return
			}
			deliver.Lock()
			defer deliver.Unlock()
			if live.Alive() {
				onSettled(settled)
			}
		})
	}
	p.Wait()
	return results
}

// Home fans out over the configured home countries.
func (s *CatalogService) Home(ctx context.Context, live *Liveness, onSettled func(FanOutResult)) []FanOutResult {
	return s.FanOut(ctx, s.HomeQueries(), live, onSettled)
}
