// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/introeval/internal/domain/model"
	"github.com/okian/introeval/internal/domain/scoring"
	"github.com/okian/introeval/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Evaluate scores one transcript.
	Evaluate(ctx context.Context, transcript string, durationSec int) (*model.Report, error)

	// EvaluateBatch scores many transcripts; per-item failures live in the results.
	EvaluateBatch(ctx context.Context, items []model.BatchItem) ([]model.BatchResult, error)

	// DefaultDuration is used when a request omits "duration".
	DefaultDuration() int

	// Rubric describes the scoring sections.
	Rubric() []scoring.Section
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxBodyBytes caps request bodies of the evaluation endpoints. Zero disables the cap.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n >= 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithRequestTimeout bounds a single evaluation request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	rubricHandler   *RubricHandler
	evaluateHandler *EvaluateHandler

	maxBodyBytes   int64
	requestTimeout time.Duration
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxBodyBytes:   1 << 20,
		requestTimeout: 10 * time.Second,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.rubricHandler = NewRubricHandler(deps)
	s.evaluateHandler = NewEvaluateHandler(deps, s.maxBodyBytes, s.requestTimeout, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", s.instrument(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.instrument(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", s.instrument(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/rubric", s.instrument(s.rubricHandler.HandleRubric, "rubric"))
	mux.HandleFunc("/evaluate", s.instrument(s.evaluateHandler.HandleEvaluate, "evaluate"))
	mux.HandleFunc("/evaluate/batch", s.instrument(s.evaluateHandler.HandleBatch, "evaluate_batch"))
}

func (s *Server) instrument(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(MetricsMiddleware(next, endpoint))
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = publicMessage(err)
	}
	writeJSON(w, status, errorResponse{Error: msg})
}
