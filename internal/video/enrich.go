package video

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// Option configures the Enricher.
type Option func(*Enricher)

// WithStagger sets the delay unit: item i starts after i*d.
func WithStagger(d time.Duration) Option {
	return func(e *Enricher) {
		if d >= 0 {
			e.stagger = d
		}
	}
}

// WithMaxConcurrency caps in-flight lookups.
func WithMaxConcurrency(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.maxConcurrent = n
		}
	}
}

// Enricher runs one video lookup per query concurrently. Results keep the
// input order and a failed lookup only blanks its own slot.
type Enricher struct {
	searcher      domain.VideoSearcher
	log           *logger.Logger
	stagger       time.Duration
	maxConcurrent int
}

// NewEnricher creates an enricher. Defaults: 100ms stagger, 4 in flight.
func NewEnricher(searcher domain.VideoSearcher, log *logger.Logger, opts ...Option) *Enricher {
	e := &Enricher{
		searcher:      searcher,
		log:           log,
		stagger:       100 * time.Millisecond,
		maxConcurrent: 4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich returns one link per query, "" where nothing was found. Without a
// credential it returns all blanks immediately. Items still pending when
// ctx ends resolve to "".
func (e *Enricher) Enrich(ctx context.Context, queries []string) []string {
	out := make([]string, len(queries))
	if len(queries) == 0 {
		return out
	}
	if !e.searcher.Available() {
		e.log.Warn("video search not configured, skipping %d lookups", len(queries))
		return out
	}

	sem := make(chan struct{}, e.maxConcurrent)
	var wg sync.WaitGroup
	for i, q := range queries {
		i, q := i, q
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i] = e.lookup(ctx, sem, time.Duration(i)*e.stagger, q)
		}()
	}
	wg.Wait()
	return out
}

func (e *Enricher) lookup(ctx context.Context, sem chan struct{}, delay time.Duration, query string) (link string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("video lookup for %q panicked: %v", query, r)
			link = ""
		}
	}()

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ""
		case <-t.C:
		}
	}

	select {
	case <-ctx.Done():
		return ""
	case sem <- struct{}{}:
	}
	defer func() { <-sem }()

	link, err := e.searcher.Search(ctx, query)
	if err != nil {
		e.log.Warn("video lookup for %q failed: %v", query, err)
		return ""
	}
	return link
}
