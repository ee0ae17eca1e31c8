// Package client talks to the curio backend API.
package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/session"
)

// DefaultServerURL is used when CURIO_SERVER_URL is unset.
const DefaultServerURL = "http://localhost:8080"

// rateLimitMarker is the error body the backend sends with 429.
const rateLimitMarker = "Too many requests"

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 4096

// maxLine bounds one streamed chunk. Text is cumulative so lines grow.
const maxLine = 1 << 20

// Client is an HTTP client for the backend. It implements session.Loader.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ServerURLFromEnv returns CURIO_SERVER_URL or DefaultServerURL.
func ServerURLFromEnv() string {
	if u := os.Getenv("CURIO_SERVER_URL"); u != "" {
		return u
	}
	return DefaultServerURL
}

type playgroundRequest struct {
	Topic               string                  `json:"topic"`
	CurrentDifficulty   int                     `json:"currentDifficulty"`
	UserContext         problemgen.UserContext  `json:"userContext"`
	PreviousPerformance *problemgen.Performance `json:"previousPerformance,omitempty"`
}

// Load fetches the next playground question. Failures are *session.LoadError:
// RateLimited for a 429 or a rate-limit body, NetworkFailure otherwise.
func (c *Client) Load(ctx context.Context, req session.LoadRequest) (*problemgen.Question, error) {
	resp, err := c.post(ctx, "/api/playground", playgroundRequest{
		Topic:               req.Topic,
		CurrentDifficulty:   req.Difficulty,
		UserContext:         req.UserContext,
		PreviousPerformance: req.Previous,
	})
	if err != nil {
		return nil, &session.LoadError{Kind: session.NetworkFailure, Err: err}
	}
	defer resp.Body.Close()

	if !success(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		kind := session.NetworkFailure
		if resp.StatusCode == http.StatusTooManyRequests || bytes.Contains(body, []byte(rateLimitMarker)) {
			kind = session.RateLimited
		}
		return nil, &session.LoadError{Kind: kind, Status: resp.StatusCode, Err: statusError(resp.StatusCode, body)}
	}

	var q problemgen.Question
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, &session.LoadError{Kind: session.NetworkFailure, Status: resp.StatusCode, Err: fmt.Errorf("decode question: %w", err)}
	}
	if err := q.CheckAnswerIndex(); err != nil {
		return nil, &session.LoadError{Kind: session.NetworkFailure, Status: resp.StatusCode, Err: err}
	}
	return &q, nil
}

type exploreRequest struct {
	Query       string                 `json:"query"`
	UserContext problemgen.UserContext `json:"userContext"`
}

// ErrRateLimited is returned by the explore calls on 429.
var ErrRateLimited = errors.New("rate limited")

// Explore fetches a complete explore answer.
func (c *Client) Explore(ctx context.Context, query string, uc problemgen.UserContext) (*explore.Response, error) {
	resp, err := c.post(ctx, "/api/explore", exploreRequest{Query: query, UserContext: uc})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	var out explore.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode explore response: %w", err)
	}
	return &out, nil
}

// StreamExplore reads the chunked explore stream and calls onChunk for
// each line. Lines that fail to parse are skipped.
func (c *Client) StreamExplore(ctx context.Context, query string, uc problemgen.UserContext, onChunk func(explore.StreamChunk)) error {
	resp, err := c.post(ctx, "/api/explore/stream", exploreRequest{Query: query, UserContext: uc})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}

	sc := bufio.NewScanner(resp.Body)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var chunk explore.StreamChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}
		onChunk(chunk)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read explore stream: %w", err)
	}
	return nil
}

// Health reports whether the backend answers GET /health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp)
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return c.http.Do(req)
}

// success is any 2xx.
func success(code int) bool { return code/100 == 2 }

func checkStatus(resp *http.Response) error {
	if success(resp.StatusCode) {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, statusError(resp.StatusCode, body))
	}
	return statusError(resp.StatusCode, body)
}

func statusError(code int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			return fmt.Errorf("server returned %d: %s", code, payload.Error)
		}
		if payload.Message != "" {
			return fmt.Errorf("server returned %d: %s", code, payload.Message)
		}
	}
	return fmt.Errorf("server returned %d", code)
}
