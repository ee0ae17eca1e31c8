package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/llm"
	"github.com/abhisek/curio/internal/problemgen"
	"github.com/abhisek/curio/internal/server"
	"github.com/abhisek/curio/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const questionBody = `{
	"text": "2 + 2 = ?",
	"options": ["3", "4", "5", "22"],
	"correctAnswer": 1,
	"explanation": {"correct": "Two pairs make four.", "key_point": "Addition combines groups."},
	"difficulty": 1,
	"topic": "Arithmetic",
	"subtopic": "Addition",
	"questionType": "recall",
	"ageGroup": "early learner"
}`

func serve(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return New(ts.URL + "/")
}

func loadReq() session.LoadRequest {
	return session.LoadRequest{
		Topic:       "Arithmetic",
		Difficulty:  2,
		UserContext: problemgen.UserContext{Age: 8},
		Previous:    &problemgen.Performance{TimeSpent: 5, WasCorrect: true},
	}
}

func TestLoad_Success(t *testing.T) {
	var got map[string]any
	var requestID string
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/playground", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		requestID = r.Header.Get("X-Request-ID")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		fmt.Fprint(w, questionBody)
	})

	q, err := c.Load(context.Background(), loadReq())
	require.NoError(t, err)
	assert.Equal(t, 1, q.CorrectAnswer)
	assert.Equal(t, "Addition combines groups.", q.Explanation.KeyPoint)
	assert.NotEmpty(t, requestID)

	assert.Equal(t, "Arithmetic", got["topic"])
	assert.EqualValues(t, 2, got["currentDifficulty"])
	assert.Equal(t, map[string]any{"age": float64(8)}, got["userContext"])
	assert.Equal(t, map[string]any{"timeSpent": float64(5), "wasCorrect": true}, got["previousPerformance"])
}

func TestLoad_FirstQuestionOmitsPrevious(t *testing.T) {
	var raw string
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		raw = string(body)
		fmt.Fprint(w, questionBody)
	})

	req := loadReq()
	req.Previous = nil
	_, err := c.Load(context.Background(), req)
	require.NoError(t, err)
	assert.NotContains(t, raw, "previousPerformance")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   session.LoadErrorKind
	}{
		{"429", http.StatusTooManyRequests, `{"error":"Too many requests"}`, session.RateLimited},
		{"rate limit body on 503", http.StatusServiceUnavailable, `Too many requests, slow down`, session.RateLimited},
		{"500", http.StatusInternalServerError, `{"message":"Internal server error"}`, session.NetworkFailure},
		{"400", http.StatusBadRequest, `{"message":"Missing required parameters"}`, session.NetworkFailure},
		{"bad json", http.StatusOK, `{"text":`, session.NetworkFailure},
		{"answer out of range", http.StatusOK, `{"text":"?","options":["a","b"],"correctAnswer":5}`, session.NetworkFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := serve(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := c.Load(context.Background(), loadReq())
			var lerr *session.LoadError
			require.ErrorAs(t, err, &lerr)
			assert.Equal(t, tt.kind, lerr.Kind)
			assert.Equal(t, tt.status, lerr.Status)
		})
	}
}

func TestLoad_AnySuccessStatus(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, questionBody)
	})
	q, err := c.Load(context.Background(), loadReq())
	require.NoError(t, err)
	assert.Equal(t, "2 + 2 = ?", q.Text)
}

func TestLoad_ErrorBodyIsBounded(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, strings.Repeat("x", 8*maxErrorBody))
		fmt.Fprint(w, rateLimitMarker)
	})
	_, err := c.Load(context.Background(), loadReq())
	var lerr *session.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, session.NetworkFailure, lerr.Kind, "text past the read limit is ignored")
	assert.Equal(t, http.StatusBadGateway, lerr.Status)
}

func TestLoad_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url).Load(context.Background(), loadReq())
	assert.ErrorIs(t, err, session.ErrNetworkFailure)
	assert.NotErrorIs(t, err, session.ErrRateLimited)
}

func TestLoad_Cancelled(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Load(ctx, loadReq())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStreamExplore(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/explore/stream", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintln(w, `{"text":"Light"}`)
		fmt.Fprintln(w, `garbage`)
		fmt.Fprintln(w, ``)
		fmt.Fprintln(w, `{"text":"Light bends","topics":[{"topic":"Refraction","type":"deeper"}]}`)
	})

	var chunks []explore.StreamChunk
	err := c.StreamExplore(context.Background(), "light", problemgen.UserContext{Age: 12}, func(ch explore.StreamChunk) {
		chunks = append(chunks, ch)
	})
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "Light bends", *chunks[1].Text)
	assert.Equal(t, "Refraction", chunks[1].Topics[0].Topic)
}

func TestExplore_StatusErrors(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/stream") {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":"Too many requests"}`)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"Failed to explore topic"}`)
	})

	_, err := c.Explore(context.Background(), "x", problemgen.UserContext{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to explore topic")

	err = c.StreamExplore(context.Background(), "x", problemgen.UserContext{}, func(explore.StreamChunk) {})
	assert.True(t, errors.Is(err, ErrRateLimited))
}

func TestHealth(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	assert.NoError(t, c.Health(context.Background()))

	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	assert.Error(t, New(url).Health(context.Background()))
}

// TestAgainstServer runs the client against the real router.
func TestAgainstServer(t *testing.T) {
	qp := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"text": "Which gas do plants absorb?",
		"options": ["Oxygen", "Carbon dioxide", "Nitrogen", "Helium"],
		"correct_answer": 1,
		"explanation": {"correct": "Plants take in CO2 for photosynthesis.", "key_point": "Plants breathe in CO2."},
		"difficulty": 2,
		"subtopic": "Photosynthesis",
		"question_type": "recall"
	}`)})
	ep := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"content": "Volcanoes form where magma reaches the surface.",
		"related_topics": [],
		"related_questions": [{"question": "What is magma?", "type": "curiosity", "context": "Molten rock."}]
	}`)})
	srv := server.New(server.DefaultConfig(), server.Deps{
		Questions: problemgen.New(qp, problemgen.DefaultConfig()),
		Explorer:  explore.New(ep, explore.Config{ChunkSize: 8}),
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	c := New(ts.URL)

	require.NoError(t, c.Health(context.Background()))

	q, err := c.Load(context.Background(), loadReq())
	require.NoError(t, err)
	assert.Equal(t, "Arithmetic", q.Topic)
	assert.Equal(t, "Carbon dioxide", q.Options[q.CorrectAnswer])

	var conv explore.Conversation
	conv.Ask("volcanoes", time.Now())
	err = c.StreamExplore(context.Background(), "volcanoes", problemgen.UserContext{Age: 12}, conv.Apply)
	require.NoError(t, err)

	latest, ok := conv.Latest()
	require.True(t, ok)
	assert.Equal(t, "Volcanoes form where magma reaches the surface.", latest.Content)
	assert.Len(t, latest.Questions, 1)
}
