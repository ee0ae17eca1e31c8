package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode reports "memory" for in-memory databases; the
		// file-backed test covers WAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		if err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_FileBackedUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curio.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	// Reopening an existing database must not fail migration.
	s.Close()
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	s2.Close()
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"llm_request_events", "user_profiles", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		seq, err := s.seq.next(ctx, nil)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if seq != int64(i) {
			t.Errorf("seq = %d, want %d", seq, i)
		}
	}
	next, err := s.seq.peek(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if next != 6 {
		t.Errorf("peek = %d, want 6", next)
	}
}

func TestSequence_RollbackLeavesNoGap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.DB().BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.seq.next(ctx, tx); err != nil {
		t.Fatal(err)
	}
	tx.Rollback()

	seq, err := s.seq.next(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if seq != 1 {
		t.Errorf("seq after rollback = %d, want 1", seq)
	}
}

func TestLLMRequestEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	events := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 800, Success: true, RequestBody: "[user]\nTopic: tides"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 120, OutputTokens: 0, LatencyMs: 400, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "explore", InputTokens: 60, OutputTokens: 300, LatencyMs: 1500, Success: true, ResponseBody: `{"content":"..."}`},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	reader := s.EventReader()
	got, err := reader.LLMRequests(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Sequence != 3 || got[2].Sequence != 1 {
		t.Errorf("sequences = %d..%d, want newest first", got[0].Sequence, got[2].Sequence)
	}
	if got[0].Purpose != "explore" || got[0].ResponseBody != `{"content":"..."}` {
		t.Errorf("newest = %+v", got[0].LLMRequestEventData)
	}
	if got[1].Success || got[1].ErrorMessage != "rate limited" {
		t.Errorf("failed event = %+v", got[1].LLMRequestEventData)
	}
	if time.Since(got[0].Timestamp) > time.Minute {
		t.Errorf("Timestamp = %v, want recent", got[0].Timestamp)
	}

	limited, err := reader.LLMRequests(ctx, QueryOpts{Limit: 1, Purpose: "question-gen"})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].Sequence != 2 {
		t.Errorf("filtered = %+v", limited)
	}

	after, err := reader.LLMRequests(ctx, QueryOpts{After: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 || after[0].Sequence != 3 {
		t.Errorf("after = %+v", after)
	}
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	for _, e := range []LLMRequestEventData{
		{Model: "m", Purpose: "question-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Model: "m", Purpose: "question-gen", InputTokens: 20, OutputTokens: 0, LatencyMs: 300, Success: false},
		{Model: "m", Purpose: "explore", InputTokens: 7, OutputTokens: 70, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	usage, err := s.EventReader().LLMUsage(ctx, time.Time{})
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("len = %d, want 2", len(usage))
	}
	// Ordered by purpose.
	explore, qgen := usage[0], usage[1]
	if explore.Purpose != "explore" || explore.Requests != 1 || explore.OutputTokens != 70 {
		t.Errorf("explore = %+v", explore)
	}
	if qgen.Requests != 2 || qgen.Failures != 1 || qgen.InputTokens != 30 || qgen.AvgLatencyMs != 200 {
		t.Errorf("question-gen = %+v", qgen)
	}

	future, err := s.EventReader().LLMUsage(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if len(future) != 0 {
		t.Errorf("future usage = %+v, want empty", future)
	}
}

func TestProfileRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ProfileRepo()

	p, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("get (empty): %v", err)
	}
	if p != nil {
		t.Fatal("expected nil profile before first save")
	}

	if err := repo.Save(ctx, Profile{Age: 12}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, Profile{Age: 13}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	p, err = repo.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Age != 13 {
		t.Fatalf("profile = %+v, want age 13", p)
	}
	if p.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}

	if err := repo.Save(ctx, Profile{Age: 0}); err == nil {
		t.Error("expected error for non-positive age")
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if p, _ := repo.Get(ctx); p != nil {
		t.Errorf("profile after clear = %+v", p)
	}
}
