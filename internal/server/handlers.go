package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/curio/internal/explore"
	"github.com/abhisek/curio/internal/problemgen"
)

// PlaygroundRequest is the body of POST /api/playground.
type PlaygroundRequest struct {
	Topic               string                  `json:"topic"`
	CurrentDifficulty   *int                    `json:"currentDifficulty"`
	UserContext         *problemgen.UserContext `json:"userContext"`
	PreviousPerformance *problemgen.Performance `json:"previousPerformance,omitempty"`
}

// GenerateRequest is the body of POST /api/playground/generate.
type GenerateRequest struct {
	Topic       string                 `json:"topic"`
	Level       int                    `json:"level"`
	UserContext problemgen.UserContext `json:"userContext"`
}

// ExploreRequest is the body of both explore endpoints.
type ExploreRequest struct {
	Query       string                 `json:"query"`
	UserContext problemgen.UserContext `json:"userContext"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePlayground(c *gin.Context) {
	var req PlaygroundRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Topic) == "" || req.CurrentDifficulty == nil || req.UserContext == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required parameters"})
		return
	}

	q, err := s.questions.Generate(c.Request.Context(), problemgen.GenerateInput{
		Topic:       req.Topic,
		Difficulty:  *req.CurrentDifficulty,
		UserContext: *req.UserContext,
		Previous:    req.PreviousPerformance,
	})
	s.metrics.questions.WithLabelValues(status(err)).Inc()
	if err != nil {
		log.Printf("playground %q: %v", req.Topic, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	err := c.ShouldBindJSON(&req)
	if err == nil && strings.TrimSpace(req.Topic) == "" {
		err = errors.New("topic is empty")
	}

	var q *problemgen.Question
	if err == nil {
		q, err = s.questions.Generate(c.Request.Context(), problemgen.GenerateInput{
			Topic:       req.Topic,
			Difficulty:  req.Level,
			UserContext: req.UserContext,
		})
		s.metrics.questions.WithLabelValues(status(err)).Inc()
	}
	if err != nil {
		log.Printf("generate %q: %v", req.Topic, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate question"})
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) handleExplore(c *gin.Context) {
	var req ExploreRequest
	err := c.ShouldBindJSON(&req)

	var resp *explore.Response
	if err == nil {
		resp, err = s.explorer.Explore(c.Request.Context(), req.Query, req.UserContext)
	}
	s.metrics.explores.WithLabelValues("full", status(err)).Inc()
	if err != nil {
		log.Printf("explore %q: %v", req.Query, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to explore topic"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// handleExploreStream writes one JSON chunk per line. Headers are sent with
// the first chunk so a failure before it still gets a JSON error.
func (s *Server) handleExploreStream(c *gin.Context) {
	var req ExploreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.metrics.explores.WithLabelValues("stream", "failure").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to explore topic"})
		return
	}

	s.metrics.activeStreams.Inc()
	defer s.metrics.activeStreams.Dec()

	started := false
	err := s.explorer.Stream(c.Request.Context(), req.Query, req.UserContext, func(chunk explore.StreamChunk) error {
		if !started {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Status(http.StatusOK)
			started = true
		}
		line, err := json.Marshal(chunk)
		if err != nil {
			return err
		}
		if _, err := c.Writer.Write(append(line, '\n')); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	s.metrics.explores.WithLabelValues("stream", status(err)).Inc()
	if err == nil {
		return
	}

	log.Printf("explore stream %q: %v", req.Query, err)
	if !started {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to explore topic"})
	}
}
