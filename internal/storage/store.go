package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// DefaultTTL is how long an idle session survives.
const DefaultTTL = time.Hour

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now. Used by tests to move time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithTTL sets the idle expiry window.
func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// Store is the session repository used by the engine. Reads never fail:
// a miss, an expired record or a backend error all yield a fresh default
// session. Writes log and swallow backend errors.
type Store struct {
	backend domain.SessionBackend
	log     *logger.Logger
	ttl     time.Duration
	now     func() time.Time
	locks   KeyLocks
}

// NewStore wraps backend.
func NewStore(backend domain.SessionBackend, log *logger.Logger, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     log,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured expiry window.
func (s *Store) TTL() time.Duration { return s.ttl }

// Get returns the session for userID, or a fresh default one.
func (s *Store) Get(ctx context.Context, userID string) *domain.Session {
	now := s.now()
	data, err := s.backend.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn("loading session %s, using default: %v", userID, err)
		}
		return domain.NewSession(userID, now)
	}

	sess, err := Decode(data)
	if err != nil {
		s.log.Warn("corrupt session %s, using default: %v", userID, err)
		return domain.NewSession(userID, now)
	}
	if now.Sub(sess.Timestamp) > s.ttl {
		s.log.Debug("session %s expired (last write %s)", userID, sess.Timestamp.Format(time.RFC3339))
		return domain.NewSession(userID, now)
	}
	sess.UserID = userID
	return sess
}

// Set stamps the session with the current time and persists it.
func (s *Store) Set(ctx context.Context, userID string, sess *domain.Session) {
	sess.UserID = userID
	sess.Timestamp = s.now()
	sess.Normalize()

	data, err := Encode(sess)
	if err != nil {
		s.log.Error("%v", err)
		return
	}
	if err := s.backend.Save(ctx, userID, data, s.ttl); err != nil {
		s.log.Error("saving session %s: %v", userID, err)
		return
	}
	s.log.Debug("saved session %s (step=%s)", userID, sess.Step)
}

// Update runs mutate on the current session under the user's lock, persists
// the result and returns a copy of it. Concurrent updates for the same user
// are serialized; different users never block each other.
func (s *Store) Update(ctx context.Context, userID string, mutate func(*domain.Session)) *domain.Session {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess := s.Get(ctx, userID)
	mutate(sess)
	s.Set(ctx, userID, sess)
	return sess.Clone()
}

// Clear deletes the user's session.
func (s *Store) Clear(ctx context.Context, userID string) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.backend.Delete(ctx, userID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.Error("clearing session %s: %v", userID, err)
		return
	}
	s.log.Debug("cleared session %s", userID)
}

// Sweep removes sessions idle for longer than the TTL as of now. Backends
// with native expiry do not implement domain.Sweeper and are skipped.
func (s *Store) Sweep(ctx context.Context, now time.Time) int {
	sw, ok := s.backend.(domain.Sweeper)
	if !ok {
		return 0
	}
	n, err := sw.SweepBefore(ctx, now.Add(-s.ttl))
	if err != nil {
		s.log.Error("sweeping sessions: %v", err)
		return 0
	}
	return n
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if c, ok := s.backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
