package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/officedesk/officedesk/internal/config"
)

// ErrStoreUnavailable marks failures to reach the underlying store.
var ErrStoreUnavailable = errors.New("store unavailable")

// Store bundles the open handle with the dialect it speaks.
type Store struct {
	DB      *sqlx.DB
	Dialect string
	// Path is the SQLite file backing the store. Empty for PostgreSQL.
	Path string

	closers []func()
}

// Close releases the handle and anything opened alongside it.
func (s *Store) Close() error {
	err := s.DB.Close()
	for _, c := range s.closers {
		c()
	}
	return err
}

// Open connects to the store selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.Driver() == config.DriverPostgres {
		sqlDB, pool, err := OpenPostgres(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, err
		}
		return &Store{DB: sqlDB, Dialect: config.DriverPostgres, closers: []func(){pool.Close}}, nil
	}

	sqlDB, err := OpenSQLite(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &Store{DB: sqlDB, Dialect: config.DriverSQLite, Path: cfg.DBPath}, nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path. The handle
// is limited to one connection so every statement runs in sequence.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: create store directory: %w", ErrStoreUnavailable, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	sqlDB, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStoreUnavailable, path, err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrStoreUnavailable, path, err)
	}
	return sqlDB, nil
}
