package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	memesCreated   atomic.Uint64
	memesDeleted   atomic.Uint64
	mintsCompleted atomic.Uint64
	upvotes        atomic.Uint64
	shares         atomic.Uint64
	storageErrors  atomic.Uint64
	fetchErrors    atomic.Uint64

	// Gauges
	mintsPending atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordMemeCreated records a meme added to the feed.
func (m *Metrics) RecordMemeCreated() {
	m.memesCreated.Add(1)
}

// RecordMemeDeleted records a meme removed from the feed.
func (m *Metrics) RecordMemeDeleted() {
	m.memesDeleted.Add(1)
}

// RecordMintCompleted records a finished mint.
func (m *Metrics) RecordMintCompleted() {
	m.mintsCompleted.Add(1)
}

// RecordUpvote records an accepted upvote.
func (m *Metrics) RecordUpvote() {
	m.upvotes.Add(1)
}

// RecordShare records a share intent being opened.
func (m *Metrics) RecordShare() {
	m.shares.Add(1)
}

// RecordStorageError records a failed persistence read or write.
func (m *Metrics) RecordStorageError() {
	m.storageErrors.Add(1)
}

// RecordFetchError records a failed remote fetch (price or template).
func (m *Metrics) RecordFetchError() {
	m.fetchErrors.Add(1)
}

// MintStarted increments the in-flight mint gauge.
func (m *Metrics) MintStarted() {
	m.mintsPending.Add(1)
}

// MintFinished decrements the in-flight mint gauge.
func (m *Metrics) MintFinished() {
	m.mintsPending.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	MemesCreated   uint64
	MemesDeleted   uint64
	MintsCompleted uint64
	Upvotes        uint64
	Shares         uint64
	StorageErrors  uint64
	FetchErrors    uint64
	MintsPending   int32
	Timestamp      time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		MemesCreated:   m.memesCreated.Load(),
		MemesDeleted:   m.memesDeleted.Load(),
		MintsCompleted: m.mintsCompleted.Load(),
		Upvotes:        m.upvotes.Load(),
		Shares:         m.shares.Load(),
		StorageErrors:  m.storageErrors.Load(),
		FetchErrors:    m.fetchErrors.Load(),
		MintsPending:   m.mintsPending.Load(),
		Timestamp:      time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.memesCreated.Store(0)
	m.memesDeleted.Store(0)
	m.mintsCompleted.Store(0)
	m.upvotes.Store(0)
	m.shares.Store(0)
	m.storageErrors.Store(0)
	m.fetchErrors.Store(0)
	m.mintsPending.Store(0)
}
