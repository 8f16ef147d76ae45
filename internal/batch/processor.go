package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Batch size limits.
const (
	DefaultBatchSize = 100
	MinBatchSize     = 1
	MaxBatchSize     = 1000
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Batch processing errors.
const (
	ErrInvalidBatchSize = constError("batch size must be between 1 and 1000")
	ErrNilCallback      = constError("batch callback cannot be nil")
)

// Callback processes one batch. start is the index of batch[0] in the full
// input, so callbacks can write results into a preallocated slice without
// locking.
type Callback[T any] func(ctx context.Context, batch []T, start int) error

// ProgressCallback receives a snapshot after each completed batch. It may be
// called from several goroutines, but never concurrently.
type ProgressCallback func(ProgressSnapshot)

// Processor splits a slice into fixed-size batches.
type Processor[T any] struct {
	batchSize  int
	onProgress ProgressCallback
}

// NewProcessor returns a processor with the given batch size.
func NewProcessor[T any](batchSize int) (*Processor[T], error) {
	if batchSize < MinBatchSize || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, batchSize)
	}
	return &Processor[T]{batchSize: batchSize}, nil
}

// WithProgressCallback sets the progress callback and returns p.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// BatchSize returns the configured batch size.
func (p *Processor[T]) BatchSize() int {
	return p.batchSize
}

// Bounds returns the [start, end) index pairs of each batch.
func (p *Processor[T]) Bounds(totalItems int) [][2]int {
	n := (totalItems + p.batchSize - 1) / p.batchSize
	bounds := make([][2]int, n)
	for i := range n {
		start := i * p.batchSize
		bounds[i] = [2]int{start, min(start+p.batchSize, totalItems)}
	}
	return bounds
}

// Process runs callback over each batch in order, stopping at the first
// error or when ctx is done. An empty slice is a no-op.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback Callback[T]) error {
	return p.ProcessConcurrent(ctx, items, callback, 1)
}

// ProcessConcurrent runs up to maxConcurrency batches at a time. The first
// error cancels the context passed to the remaining batches and is returned.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback Callback[T],
	maxConcurrency int,
) error {
	if callback == nil {
		return ErrNilCallback
	}
	maxConcurrency = max(maxConcurrency, 1)

	bounds := p.Bounds(len(items))
	progress := NewProgress(len(items), len(bounds), p.batchSize)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for i, b := range bounds {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := callback(gctx, items[b[0]:b[1]], b[0]); err != nil {
				return fmt.Errorf("batch %d failed: %w", i, err)
			}
			snap := progress.AddProcessed(b[1] - b[0])
			if p.onProgress != nil {
				progress.notify(p.onProgress, snap)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
