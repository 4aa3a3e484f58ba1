package storage

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/mealbot/internal/logger"
)

// SweeperOption configures the sweeper.
type SweeperOption func(*Sweeper)

// WithSweepInterval sets how often expired sessions are removed.
func WithSweepInterval(d time.Duration) SweeperOption {
	return func(s *Sweeper) {
		if d > 0 {
			s.interval = d
		}
	}
}

// Sweeper periodically calls Store.Sweep in the background. It is only
// useful for backends without native expiry.
type Sweeper struct {
	store    *Store
	log      *logger.Logger
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSweeper creates a sweeper for store. Default interval is 5 minutes.
func NewSweeper(store *Store, log *logger.Logger, opts ...SweeperOption) *Sweeper {
	s := &Sweeper{
		store:    store,
		log:      log,
		interval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins the background loop. Non-blocking.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("session sweeper already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.done = make(chan struct{})

	go s.loop(childCtx, s.done)

	s.log.Info("session sweeper started (interval=%s, ttl=%s)", s.interval, s.store.TTL())
}

// Stop shuts the loop down and waits for it to exit.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("session sweeper stopped")
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Sweeper) tick(ctx context.Context) {
	if n := s.store.Sweep(ctx, s.store.now()); n > 0 {
		s.log.Info("removed %d expired sessions", n)
	}
}
