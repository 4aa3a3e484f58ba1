package domain

import (
	"context"
	"time"
)

// Completer turns a prompt into free-form text. Implementations wrap a
// generative model; nothing about the returned text's shape is guaranteed.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// VideoSearcher finds one instructional video for a query. Search returns
// ErrNoResult when nothing matched. Available reports whether a credential
// is configured; callers must not call Search when it is false.
type VideoSearcher interface {
	Search(ctx context.Context, query string) (string, error)
	Available() bool
}

// SessionBackend persists encoded sessions by key. Load returns ErrNotFound
// on a miss. A ttl of zero means "no expiry"; backends without native
// expiry ignore it and implement Sweeper instead.
type SessionBackend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Sweeper is implemented by backends that lack native expiry. SweepBefore
// deletes every record last written before cutoff and returns how many
// were removed.
type Sweeper interface {
	SweepBefore(ctx context.Context, cutoff time.Time) (int, error)
}
