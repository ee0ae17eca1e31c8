package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/curio/internal/store"
)

// LoggingProvider appends an llm_request event for every call, failed or
// not. provider is the configured backend name, e.g. "gemini".
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
}

func WithLogging(p Provider, provider string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: provider, events: repo}
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(ctx, req, resp, err, time.Since(began))

	// The caller may have given up already; the record is still wanted.
	if werr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record llm request: %v\n", werr)
	}
	return resp, err
}

func (l *LoggingProvider) event(ctx context.Context, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp == nil {
		return ev
	}
	if resp.Model != "" {
		ev.Model = resp.Model
	}
	ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
	ev.ResponseBody = string(resp.Content)
	return ev
}

// transcript renders req as "[role]\ncontent" blocks, system prompt first
// and schema last.
func transcript(req Request) string {
	blocks := make([]string, 0, len(req.Messages)+2)
	if req.System != "" {
		blocks = append(blocks, "[system]\n"+req.System)
	}
	for _, m := range req.Messages {
		blocks = append(blocks, "["+string(m.Role)+"]\n"+m.Content)
	}
	if s := req.Schema; s != nil {
		if def, err := json.Marshal(s.Definition); err == nil {
			blocks = append(blocks, "[schema: "+s.Name+"]\n"+string(def))
		}
	}
	return strings.Join(blocks, "\n\n")
}

// TimeoutProvider puts one deadline over the whole call, so it must sit
// outside RetryProvider.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

func WithTimeout(p Provider, d time.Duration) Provider {
	return &TimeoutProvider{inner: p, timeout: d}
}

func (t *TimeoutProvider) ModelID() string { return t.inner.ModelID() }

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}
