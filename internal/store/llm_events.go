package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo and EventReader on top of the ent SQL
// builders and the global sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequence
}

func (r *eventRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	tx, err := r.drv.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	seqNum, err := r.seq.next(ctx, tx)
	if err != nil {
		return err
	}

	query, args := r.builder().Insert(llmEventsTable).
		Columns(colSequence, colCreatedAt, colProvider, colModel, colPurpose,
			colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
			colErrorMessage, colRequestBody, colResponseBody).
		Values(seqNum, time.Now().UnixMilli(), data.Provider, data.Model, data.Purpose,
			data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success,
			data.ErrorMessage, data.RequestBody, data.ResponseBody).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit LLM request event: %w", err)
	}
	return nil
}

// llmEventRow mirrors a llm_request_events row for entsql.ScanSlice.
type llmEventRow struct {
	Sequence     int64  `sql:"sequence"`
	CreatedAt    int64  `sql:"created_at"`
	Provider     string `sql:"provider"`
	Model        string `sql:"model"`
	Purpose      string `sql:"purpose"`
	InputTokens  int    `sql:"input_tokens"`
	OutputTokens int    `sql:"output_tokens"`
	LatencyMs    int64  `sql:"latency_ms"`
	Success      bool   `sql:"success"`
	ErrorMessage string `sql:"error_message"`
	RequestBody  string `sql:"request_body"`
	ResponseBody string `sql:"response_body"`
}

func (r *eventRepo) LLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := r.builder().
		Select(colSequence, colCreatedAt, colProvider, colModel, colPurpose,
			colInputTokens, colOutputTokens, colLatencyMs, colSuccess,
			colErrorMessage, colRequestBody, colResponseBody).
		From(entsql.Table(llmEventsTable)).
		OrderBy(entsql.Desc(colSequence))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(colCreatedAt, opts.From.UnixMilli()))
	}
	if opts.Purpose != "" {
		preds = append(preds, entsql.EQ(colPurpose, opts.Purpose))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	var rows []llmEventRow
	if err := r.scan(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("query LLM request events: %w", err)
	}

	events := make([]LLMRequestEvent, len(rows))
	for i, row := range rows {
		events[i] = LLMRequestEvent{
			Sequence:  row.Sequence,
			Timestamp: time.UnixMilli(row.CreatedAt).UTC(),
			LLMRequestEventData: LLMRequestEventData{
				Provider:     row.Provider,
				Model:        row.Model,
				Purpose:      row.Purpose,
				InputTokens:  row.InputTokens,
				OutputTokens: row.OutputTokens,
				LatencyMs:    row.LatencyMs,
				Success:      row.Success,
				ErrorMessage: row.ErrorMessage,
				RequestBody:  row.RequestBody,
				ResponseBody: row.ResponseBody,
			},
		}
	}
	return events, nil
}

type usageRow struct {
	Purpose      string  `sql:"purpose"`
	Model        string  `sql:"model"`
	Requests     int     `sql:"requests"`
	Failures     int     `sql:"failures"`
	InputTokens  int     `sql:"input_tokens"`
	OutputTokens int     `sql:"output_tokens"`
	AvgLatencyMs float64 `sql:"avg_latency_ms"`
}

func (r *eventRepo) LLMUsage(ctx context.Context, since time.Time) ([]LLMUsage, error) {
	sel := r.builder().
		Select(
			colPurpose,
			colModel,
			entsql.As(entsql.Count("*"), "requests"),
			entsql.As("SUM(CASE WHEN success THEN 0 ELSE 1 END)", "failures"),
			entsql.As(entsql.Sum(colInputTokens), colInputTokens),
			entsql.As(entsql.Sum(colOutputTokens), colOutputTokens),
			entsql.As(entsql.Avg(colLatencyMs), "avg_latency_ms"),
		).
		From(entsql.Table(llmEventsTable)).
		GroupBy(colPurpose, colModel).
		OrderBy(colPurpose, colModel)
	if !since.IsZero() {
		sel.Where(entsql.GTE(colCreatedAt, since.UnixMilli()))
	}

	var rows []usageRow
	if err := r.scan(ctx, sel, &rows); err != nil {
		return nil, fmt.Errorf("aggregate LLM usage: %w", err)
	}

	usage := make([]LLMUsage, len(rows))
	for i, row := range rows {
		usage[i] = LLMUsage(row)
	}
	return usage, nil
}

func (r *eventRepo) scan(ctx context.Context, sel *entsql.Selector, dest any) error {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	return entsql.ScanSlice(rows, dest)
}
