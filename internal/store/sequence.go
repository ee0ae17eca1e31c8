package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequence is the single, gap-free counter stamped on every event. ent's
// schema layer cannot describe it, so it is plain SQL over a one-row table.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

// queryRower is *sql.DB or *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const (
	seqCreate = `CREATE TABLE IF NOT EXISTS global_sequence (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	next_val INTEGER NOT NULL DEFAULT 1
)`
	seqSeed = `INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`
	seqTake = `UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`
	seqPeek = `SELECT next_val FROM global_sequence WHERE id = 1`
)

func openSequence(db *sql.DB) (*sequence, error) {
	for _, stmt := range []string{seqCreate, seqSeed} {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("init event sequence: %w", err)
		}
	}
	return &sequence{db: db}, nil
}

// next takes a number. Run it inside the insert's transaction so a rollback
// returns the number too; a nil q uses the database directly.
func (s *sequence) next(ctx context.Context, q queryRower) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q == nil {
		q = s.db
	}
	var n int64
	if err := q.QueryRowContext(ctx, seqTake).Scan(&n); err != nil {
		return 0, fmt.Errorf("take sequence: %w", err)
	}
	return n, nil
}

// peek is the number the next event will get.
func (s *sequence) peek(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, seqPeek).Scan(&n); err != nil {
		return 0, fmt.Errorf("peek sequence: %w", err)
	}
	return n, nil
}
