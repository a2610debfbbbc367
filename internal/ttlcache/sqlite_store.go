package ttlcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when the table layout changes. Cache databases with
// another version are dropped and recreated since their contents are
// disposable.
const schemaVersion = 1

const sqliteBusyCode = 5

// busyRetry backs off while another process holds the write lock.
var busyRetry = []retry.Option{
	retry.RetryIf(isSQLiteBusy),
	retry.Attempts(5),
	retry.Delay(10 * time.Millisecond),
	retry.MaxDelay(200 * time.Millisecond),
	retry.DelayType(retry.BackOffDelay),
	retry.LastErrorOnly(true),
}

// SQLiteStore keeps entries in a single-table SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLiteStore opens or creates the cache database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("cache database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &SQLiteStore{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version == schemaVersion {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS cache_entries; DROP TABLE IF EXISTS schema_version;"); err != nil {
		return fmt.Errorf("drop stale cache schema: %w", err)
	}
	return s.createSchema(ctx)
}

func (s *SQLiteStore) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Load(key string) ([]byte, bool, error) {
	var value string
	err := retry.Do(func() error {
		return s.db.QueryRow("SELECT value FROM cache_entries WHERE key = ?", key).Scan(&value)
	}, busyRetry...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load cache entry: %w", err)
	}
	return []byte(value), true, nil
}

func (s *SQLiteStore) Save(key string, value []byte) error {
	return s.exec(
		`INSERT INTO cache_entries (key, value, written_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, written_at = excluded.written_at`,
		key, string(value), time.Now().UnixMilli(),
	)
}

func (s *SQLiteStore) Delete(key string) error {
	return s.exec("DELETE FROM cache_entries WHERE key = ?", key)
}

func (s *SQLiteStore) Clear() error {
	return s.exec("DELETE FROM cache_entries")
}

func (s *SQLiteStore) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM cache_entries ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list cache keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan cache key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) exec(query string, args ...any) error {
	return retry.Do(func() error {
		_, err := s.db.Exec(query, args...)
		return err
	}, busyRetry...)
}

// isSQLiteBusy matches SQLITE_BUSY by result code, or by message when the
// driver error has been wrapped into text.
func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code()&0xff == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
