package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hammamikhairi/mealbot/internal/domain"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

var (
	_ domain.SessionBackend = (*SQLBackend)(nil)
	_ domain.Sweeper        = (*SQLBackend)(nil)
)

const sessionSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	user_id    TEXT PRIMARY KEY,
	data       TEXT NOT NULL,
	updated_at BIGINT NOT NULL,
	expires_at BIGINT NOT NULL
)`

// SQLBackend stores sessions in a SQL table through database/sql. It
// supports the sqlite3 and postgres drivers. Timestamps are unix
// nanoseconds; an expires_at of 0 never expires.
type SQLBackend struct {
	db     *sql.DB
	driver string
	now    func() time.Time
	log    *logger.Logger
}

// ParseDSN splits a SESSION_DB value of the form "sqlite:path" or
// "postgres:dsn" into a driver name and data source.
func ParseDSN(s string) (driver, dsn string, err error) {
	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || rest == "" {
		return "", "", fmt.Errorf("storage: invalid session db %q", s)
	}
	switch scheme {
	case "sqlite", "sqlite3":
		return "sqlite3", rest, nil
	case "postgres", "postgresql":
		if strings.HasPrefix(rest, "//") {
			rest = scheme + ":" + rest
		}
		return "postgres", rest, nil
	default:
		return "", "", fmt.Errorf("storage: unsupported session db driver %q", scheme)
	}
}

// OpenSQL opens the database and creates the sessions table if needed.
func OpenSQL(ctx context.Context, driver, dsn string, log *logger.Logger) (*SQLBackend, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		// An in-memory sqlite database exists per connection.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.ExecContext(ctx, sessionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: creating sessions table: %w", err)
	}
	log.Info("session table ready (%s)", driver)
	return &SQLBackend{db: db, driver: driver, now: time.Now, log: log}, nil
}

// rebind rewrites ? placeholders as $n for postgres.
func (b *SQLBackend) rebind(query string) string {
	if b.driver != "postgres" {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Load implements domain.SessionBackend.
func (b *SQLBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var (
		data    string
		expires int64
	)
	row := b.db.QueryRowContext(ctx, b.rebind(`SELECT data, expires_at FROM sessions WHERE user_id = ?`), key)
	if err := row.Scan(&data, &expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("storage: loading %s: %w", key, err)
	}
	if expires != 0 && b.now().UnixNano() >= expires {
		return nil, domain.ErrNotFound
	}
	return []byte(data), nil
}

// Save implements domain.SessionBackend with an upsert.
func (b *SQLBackend) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := b.now()
	var expires int64
	if ttl > 0 {
		expires = now.Add(ttl).UnixNano()
	}
	query := b.rebind(`
		INSERT INTO sessions (user_id, data, updated_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at`)
	if _, err := b.db.ExecContext(ctx, query, key, string(data), now.UnixNano(), expires); err != nil {
		return fmt.Errorf("storage: saving %s: %w", key, err)
	}
	return nil
}

// Delete implements domain.SessionBackend.
func (b *SQLBackend) Delete(ctx context.Context, key string) error {
	if _, err := b.db.ExecContext(ctx, b.rebind(`DELETE FROM sessions WHERE user_id = ?`), key); err != nil {
		return fmt.Errorf("storage: deleting %s: %w", key, err)
	}
	return nil
}

// SweepBefore implements domain.Sweeper.
func (b *SQLBackend) SweepBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := b.db.ExecContext(ctx, b.rebind(`DELETE FROM sessions WHERE updated_at < ?`), cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("storage: sweeping sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: sweeping sessions: %w", err)
	}
	return int(n), nil
}

// Close closes the database.
func (b *SQLBackend) Close() error {
	return b.db.Close()
}
