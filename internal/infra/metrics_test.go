package infra

import (
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordMemeCreated()
	m.RecordMemeCreated()
	m.RecordMemeDeleted()
	m.RecordUpvote()
	m.RecordShare()
	m.RecordShare()
	m.RecordShare()

	snap := m.Snapshot()

	if snap.MemesCreated != 2 {
		t.Errorf("Expected 2 memes created, got %d", snap.MemesCreated)
	}
	if snap.MemesDeleted != 1 {
		t.Errorf("Expected 1 meme deleted, got %d", snap.MemesDeleted)
	}
	if snap.Upvotes != 1 {
		t.Errorf("Expected 1 upvote, got %d", snap.Upvotes)
	}
	if snap.Shares != 3 {
		t.Errorf("Expected 3 shares, got %d", snap.Shares)
	}
}

func TestMetrics_MintGauge(t *testing.T) {
	m := &Metrics{}

	m.MintStarted()
	m.MintStarted()

	snap := m.Snapshot()
	if snap.MintsPending != 2 {
		t.Errorf("Expected 2 pending mints, got %d", snap.MintsPending)
	}

	m.MintFinished()
	m.RecordMintCompleted()
	snap = m.Snapshot()
	if snap.MintsPending != 1 {
		t.Errorf("Expected 1 pending mint, got %d", snap.MintsPending)
	}
	if snap.MintsCompleted != 1 {
		t.Errorf("Expected 1 completed mint, got %d", snap.MintsCompleted)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordMemeCreated()
	m.RecordStorageError()
	m.RecordFetchError()
	m.MintStarted()

	m.Reset()
	snap := m.Snapshot()

	if snap.MemesCreated != 0 {
		t.Error("Expected 0 memes created after reset")
	}
	if snap.StorageErrors != 0 {
		t.Error("Expected 0 storage errors after reset")
	}
	if snap.FetchErrors != 0 {
		t.Error("Expected 0 fetch errors after reset")
	}
	if snap.MintsPending != 0 {
		t.Error("Expected 0 pending mints after reset")
	}
}
