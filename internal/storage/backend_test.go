package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// exerciseBackend runs the same CRUD contract against any backend.
func exerciseBackend(t *testing.T, b domain.SessionBackend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Load(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := b.Save(ctx, "u1", []byte(`{"step":"meal"}`), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := b.Save(ctx, "u1", []byte(`{"step":"diet"}`), time.Hour); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := b.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"step":"diet"}` {
		t.Fatalf("unexpected payload %q", got)
	}

	if err := b.Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := b.Load(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := b.Delete(ctx, "u1"); err != nil {
		t.Fatalf("deleting a missing key should succeed, got %v", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend(logger.Nop()))
}

func TestMemoryBackendHidesExpired(t *testing.T) {
	clock := newFakeClock()
	mem := NewMemoryBackend(logger.Nop())
	mem.now = clock.Now
	ctx := context.Background()

	if err := mem.Save(ctx, "u1", []byte("x"), time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	clock.Advance(time.Minute)
	if _, err := mem.Load(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired entry to be hidden, got %v", err)
	}
}

func TestRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	b := NewRedisBackend(client, logger.Nop())
	defer b.Close()

	exerciseBackend(t, b)
}

func TestRedisBackendUsesNativeTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := OpenRedis(context.Background(), "redis://"+mr.Addr(), logger.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()
	ctx := context.Background()

	if err := b.Save(ctx, "u1", []byte("x"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("session:u1") {
		t.Fatal("expected key under session: prefix")
	}
	if ttl := mr.TTL("session:u1"); ttl != time.Hour {
		t.Fatalf("expected 1h ttl, got %s", ttl)
	}

	mr.FastForward(time.Hour + time.Second)
	if _, err := b.Load(ctx, "u1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestRedisBackendUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := OpenRedis(context.Background(), "redis://"+addr, logger.Nop()); err == nil {
		t.Fatal("expected ping failure")
	}
}

func openTestSQL(t *testing.T) *SQLBackend {
	t.Helper()
	b, err := OpenSQL(context.Background(), "sqlite3", ":memory:", logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestSQLBackend(t *testing.T) {
	exerciseBackend(t, openTestSQL(t))
}

func TestSQLBackendSweep(t *testing.T) {
	b := openTestSQL(t)
	clock := newFakeClock()
	b.now = clock.Now
	ctx := context.Background()

	if err := b.Save(ctx, "old", []byte("a"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	clock.Advance(30 * time.Minute)
	if err := b.Save(ctx, "new", []byte("b"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	n, err := b.SweepBefore(ctx, clock.Now().Add(-10*time.Minute))
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row swept, got %d", n)
	}
	if _, err := b.Load(ctx, "new"); err != nil {
		t.Fatalf("fresh row should survive: %v", err)
	}

	clock.Advance(time.Hour)
	if _, err := b.Load(ctx, "new"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected expired row to be hidden, got %v", err)
	}
}

func TestParseDSN(t *testing.T) {
	tests := []struct {
		in         string
		wantDriver string
		wantDSN    string
		wantErr    bool
	}{
		{"sqlite:/var/lib/mealbot.db", "sqlite3", "/var/lib/mealbot.db", false},
		{"sqlite::memory:", "sqlite3", ":memory:", false},
		{"postgres://bot@db/meals?sslmode=disable", "postgres", "postgres://bot@db/meals?sslmode=disable", false},
		{"postgres:host=db dbname=meals", "postgres", "host=db dbname=meals", false},
		{"mysql:whatever", "", "", true},
		{"nonsense", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			driver, dsn, err := ParseDSN(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if driver != tt.wantDriver || dsn != tt.wantDSN {
				t.Fatalf("got %q %q, want %q %q", driver, dsn, tt.wantDriver, tt.wantDSN)
			}
		})
	}
}

func TestRebindForPostgres(t *testing.T) {
	b := &SQLBackend{driver: "postgres"}
	got := b.rebind("SELECT a FROM t WHERE x = ? AND y = ?")
	if got != "SELECT a FROM t WHERE x = $1 AND y = $2" {
		t.Fatalf("unexpected rebind: %q", got)
	}
	b.driver = "sqlite3"
	if got := b.rebind("x = ?"); got != "x = ?" {
		t.Fatalf("sqlite should keep ?, got %q", got)
	}
}

func TestDecodeRepairsInvalidFields(t *testing.T) {
	sess, err := Decode([]byte(`{"userId":"u1","step":"bogus","language":"fr","timestamp":"2026-03-14T09:00:00.5Z"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sess.Step != domain.StepLanguage || sess.Language != domain.LanguageEnglish || sess.Ingredients == nil {
		t.Fatalf("expected repaired session, got %+v", sess)
	}
	if _, err := Decode([]byte("[]")); err == nil {
		t.Fatal("expected error for non-object document")
	}
}
