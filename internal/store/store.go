// Package store persists the learner profile and the LLM request log in a
// local SQLite file. Tables are declared with ent's schema package and
// queried through ent's SQL builders; there is no generated client.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	_ "modernc.org/sqlite" // registers "sqlite", no cgo
)

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
	"PRAGMA synchronous = NORMAL",
}

type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequence
}

// Open connects to dsn, tunes the connection and brings the schema up to
// date. dsn may be a file path or an in-memory DSN.
func Open(dsn string) (s *Store, err error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dsn, err)
	}
	defer func() {
		if err != nil {
			db.Close()
		}
	}()

	// Pragmas are per connection, and ":memory:" is per connection too.
	db.SetMaxOpenConns(1)
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	mig, err := schema.NewMigrate(drv)
	if err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	if err := mig.Create(context.Background(), Tables...); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	seq, err := openSequence(db)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, drv: drv, seq: seq}, nil
}

func (s *Store) Close() error { return s.drv.Close() }

// DB exposes the raw handle for ad hoc queries.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) EventRepo() EventRepo     { return s.events() }
func (s *Store) EventReader() EventReader { return s.events() }
func (s *Store) ProfileRepo() ProfileRepo { return &profileRepo{drv: s.drv} }

func (s *Store) events() *eventRepo { return &eventRepo{drv: s.drv, seq: s.seq} }

// DefaultDBPath is $CURIO_DB, else curio/curio.db under the XDG data
// directory (~/.local/share when XDG_DATA_HOME is unset). The parent
// directory is created.
func DefaultDBPath() (string, error) {
	p := os.Getenv("CURIO_DB")
	if p == "" {
		base, err := dataHome()
		if err != nil {
			return "", err
		}
		p = filepath.Join(base, "curio", "curio.db")
	}
	return p, EnsureDir(p)
}

func dataHome() (string, error) {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Join(errors.New("store: no data directory"), err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// EnsureDir creates path's parent directory.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
