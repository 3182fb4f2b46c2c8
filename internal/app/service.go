// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/introeval/internal/adapters/worker"
	"github.com/okian/introeval/internal/domain/model"
	"github.com/okian/introeval/internal/domain/scoring"
	"github.com/okian/introeval/internal/domain/sentiment"
	"github.com/okian/introeval/pkg/logger"
	"github.com/okian/introeval/pkg/metrics"
)

// Service evaluates introduction transcripts and keeps running counters.
type Service struct {
	mu sync.RWMutex

	// Core components
	evaluator *scoring.Evaluator
	pool      *worker.Pool

	// Configuration
	analyzer        sentiment.Analyzer
	grammar         scoring.GrammarChecker
	defaultDuration int
	batchWorkers    int
	maxBatchSize    int

	// State
	started   bool
	startedAt time.Time
	evaluated atomic.Int64
	rejected  atomic.Int64
	failed    atomic.Int64
	batches   atomic.Int64

	// Logging
	logger logger.Logger
}

// Stats is a snapshot of the service counters.
type Stats struct {
	Started         bool    `json:"started"`
	Total           int64   `json:"total"`
	Evaluated       int64   `json:"evaluated"`
	Rejected        int64   `json:"rejected"`
	Failed          int64   `json:"failed"`
	Batches         int64   `json:"batches"`
	UptimeSec       float64 `json:"uptime_sec"`
	BatchWorkers    int     `json:"batch_workers"`
	MaxBatchSize    int     `json:"max_batch_size"`
	DefaultDuration int     `json:"default_duration_sec"`
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSentimentAnalyzer replaces the VADER analyzer, mainly for tests.
func WithSentimentAnalyzer(a sentiment.Analyzer) Option {
	return func(s *Service) {
		if a != nil {
			s.analyzer = a
		}
	}
}

// WithGrammarChecker plugs in a real grammar backend.
func WithGrammarChecker(c scoring.GrammarChecker) Option {
	return func(s *Service) {
		if c != nil {
			s.grammar = c
		}
	}
}

// WithDefaultDuration sets the duration used when a request omits one.
func WithDefaultDuration(sec int) Option {
	return func(s *Service) {
		if sec > 0 {
			s.defaultDuration = sec
		}
	}
}

// WithBatchWorkers sets how many batch items are evaluated concurrently.
func WithBatchWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchWorkers = n
		}
	}
}

// WithMaxBatchSize caps the number of items per batch.
func WithMaxBatchSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchSize = n
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		defaultDuration: scoring.DefaultDurationSec,
		batchWorkers:    runtime.NumCPU(),
		maxBatchSize:    100,
		logger:          nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the evaluator and the batch pool. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting evaluation service...")

	evalOpts := []scoring.Option{}
	if s.analyzer != nil {
		evalOpts = append(evalOpts, scoring.WithSentimentAnalyzer(s.analyzer))
	}
	if s.grammar != nil {
		evalOpts = append(evalOpts, scoring.WithGrammarChecker(s.grammar))
	}
	s.evaluator = scoring.NewEvaluator(evalOpts...)
	s.pool = worker.NewPool(s.batchWorkers, s, worker.WithLogger(s.logger))

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("batchWorkers", s.batchWorkers),
		logger.Int("maxBatchSize", s.maxBatchSize),
		logger.Int("defaultDurationSec", s.defaultDuration),
	)

	return nil
}

// Stop marks the service as stopped. In-flight evaluations finish normally.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "evaluation service stopped",
		logger.Any("evaluated", s.evaluated.Load()),
		logger.Any("rejected", s.rejected.Load()),
		logger.Any("failed", s.failed.Load()),
	)
}

// DefaultDuration returns the duration used when a request omits one.
func (s *Service) DefaultDuration() int {
	return s.defaultDuration
}

// MaxBatchSize returns the configured batch cap.
func (s *Service) MaxBatchSize() int {
	return s.maxBatchSize
}

// Rubric returns the rubric layout with section and category maxima.
func (s *Service) Rubric() []scoring.Section {
	return scoring.Sections()
}

func (s *Service) components() (*scoring.Evaluator, *worker.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.evaluator, s.pool, nil
}

// Evaluate scores one transcript and records the outcome.
func (s *Service) Evaluate(ctx context.Context, transcript string, durationSec int) (*model.Report, error) {
	evaluator, _, err := s.components()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report, err := evaluator.Evaluate(ctx, transcript, durationSec)
	latency := float64(time.Since(start).Milliseconds())

	switch {
	case errors.Is(err, scoring.ErrEmptyTranscript), errors.Is(err, scoring.ErrInvalidDuration):
		s.rejected.Add(1)
		metrics.RecordEvaluation(metrics.OutcomeRejected)
		metrics.RecordErrorByType("validation", "low")
		s.logger.Debug(ctx, "transcript rejected", logger.Error(err))
		return nil, err
	case err != nil:
		s.failed.Add(1)
		metrics.RecordEvaluation(metrics.OutcomeFailed)
		metrics.RecordErrorByType("evaluation", "high")
		metrics.RecordErrorLatency("service", "evaluation", latency)
		s.logger.Error(ctx, "evaluation failed", logger.Error(err))
		return nil, err
	}

	s.evaluated.Add(1)
	metrics.RecordEvaluation(metrics.OutcomeOK)
	metrics.RecordEvaluationLatency(latency)
	metrics.ObserveOverallScore(report.OverallScore)
	metrics.ObserveTranscriptWords(report.WordCount)
	for category, score := range report.SubScores() {
		metrics.ObserveCategoryScore(category, score)
	}

	s.logger.Debug(ctx, "transcript evaluated",
		logger.Int("overall", report.OverallScore),
		logger.Int("words", report.WordCount),
		logger.Int("durationSec", durationSec),
	)

	return report, nil
}

// EvaluateBatch scores every item concurrently. Per-item failures are carried
// in the results; the error is only set when the batch as a whole is refused
// or aborted.
func (s *Service) EvaluateBatch(ctx context.Context, items []model.BatchItem) ([]model.BatchResult, error) {
	_, pool, err := s.components()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(items) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(items), s.maxBatchSize)
	}

	s.batches.Add(1)
	results, err := pool.Run(ctx, items)
	if err != nil {
		s.logger.Warn(ctx, "batch aborted", logger.Int("items", len(items)), logger.Error(err))
		return nil, err
	}

	s.logger.Info(ctx, "batch evaluated", logger.Int("items", len(items)))
	return results, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:         s.started,
		Evaluated:       s.evaluated.Load(),
		Rejected:        s.rejected.Load(),
		Failed:          s.failed.Load(),
		Batches:         s.batches.Load(),
		BatchWorkers:    s.batchWorkers,
		MaxBatchSize:    s.maxBatchSize,
		DefaultDuration: s.defaultDuration,
	}
	stats.Total = stats.Evaluated + stats.Rejected + stats.Failed
	if s.started {
		stats.UptimeSec = time.Since(s.startedAt).Seconds()
	}

	return stats
}
