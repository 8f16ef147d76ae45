package batch

import (
	"sync"
	"time"
)

// Progress tracks batch completion. It is safe for concurrent use.
type Progress struct {
	mu               sync.Mutex
	notifyMu         sync.Mutex
	totalItems       int
	processedItems   int
	totalBatches     int
	processedBatches int
	batchSize        int
	startTime        time.Time
}

// ProgressSnapshot is a point-in-time copy of a Progress.
type ProgressSnapshot struct {
	TotalItems       int
	ProcessedItems   int
	TotalBatches     int
	ProcessedBatches int
	BatchSize        int
	Elapsed          time.Duration
}

// NewProgress starts tracking totalItems items in totalBatches batches.
func NewProgress(totalItems, totalBatches, batchSize int) *Progress {
	return &Progress{
		totalItems:   totalItems,
		totalBatches: totalBatches,
		batchSize:    batchSize,
		startTime:    time.Now(),
	}
}

// AddProcessed records one finished batch of n items and returns the
// resulting snapshot.
func (p *Progress) AddProcessed(n int) ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processedItems += n
	p.processedBatches++
	return p.snapshotLocked()
}

// Snapshot returns the current state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Progress) snapshotLocked() ProgressSnapshot {
	return ProgressSnapshot{
		TotalItems:       p.totalItems,
		ProcessedItems:   p.processedItems,
		TotalBatches:     p.totalBatches,
		ProcessedBatches: p.processedBatches,
		BatchSize:        p.batchSize,
		Elapsed:          time.Since(p.startTime),
	}
}

// notify serializes progress callbacks.
func (p *Progress) notify(cb ProgressCallback, snap ProgressSnapshot) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()
	cb(snap)
}

// PercentComplete returns completion in [0, 100].
func (s ProgressSnapshot) PercentComplete() float64 {
	if s.TotalItems == 0 {
		return 100
	}
	const percent = 100
	return float64(s.ProcessedItems) / float64(s.TotalItems) * percent
}

// IsComplete reports whether every item has been processed.
func (s ProgressSnapshot) IsComplete() bool {
	return s.ProcessedItems >= s.TotalItems
}

// ItemsPerSecond returns the processing rate so far.
func (s ProgressSnapshot) ItemsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.ProcessedItems) / s.Elapsed.Seconds()
}
