// Package worker evaluates batches of transcripts on a bounded goroutine pool.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/introeval/internal/domain/model"
	"github.com/okian/introeval/pkg/logger"
	"github.com/okian/introeval/pkg/metrics"
)

// Evaluator scores a single transcript.
type Evaluator interface {
	Evaluate(ctx context.Context, transcript string, durationSec int) (*model.Report, error)
}

// Pool runs evaluations concurrently with at most size items in flight.
// Results keep the order of the submitted items.
type Pool struct {
	size      int
	evaluator Evaluator
	name      string
	logger    logger.Logger
}

// NewPool creates a new worker pool. A size below one defaults to runtime.NumCPU().
func NewPool(size int, evaluator Evaluator, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}

	p := &Pool{
		size:      size,
		evaluator: evaluator,
		name:      "worker-pool",
		logger:    logger.Get(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.Named(p.name)

	return p
}

// Size returns the maximum number of concurrent evaluations.
func (p *Pool) Size() int {
	return p.size
}

// Run evaluates every item. A failing item is reported in its BatchResult and
// does not stop the others; only context cancellation aborts the batch.
func (p *Pool) Run(ctx context.Context, items []model.BatchItem) ([]model.BatchResult, error) {
	results := make([]model.BatchResult, len(items))
	metrics.ObserveBatchSize(len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			return p.process(gctx, i, items[i], results)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch aborted: %w", err)
	}

	return results, nil
}

// process evaluates one item into results[i]. Each goroutine writes only its own slot.
func (p *Pool) process(ctx context.Context, i int, item model.BatchItem, results []model.BatchResult) error { //nolint:gocritic // hugeParam: item is copied per goroutine
	start := time.Now()
	metrics.AddWorkerActive(1)
	defer func() {
		metrics.AddWorkerActive(-1)
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	results[i].ID = item.ID
	report, err := p.evaluator.Evaluate(ctx, item.Transcript, item.DurationSec)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		metrics.RecordErrorByType("batch_item", "low")
		p.logger.Warn(ctx, "batch item failed",
			logger.String("id", item.ID),
			logger.Int("index", i),
			logger.Error(err),
		)
		results[i].Error = err.Error()
		return nil
	}

	results[i].Report = report
	return nil
}
