package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"odinary_go/internal/domain"
	"odinary_go/internal/infra"
)

// DefaultMintDelay simulates the minting round-trip.
const DefaultMintDelay = 2 * time.Second

// Controller owns the canonical meme collection. All reads hand out
// snapshots; the live slice never escapes. Every mutation rewrites the
// whole collection through the store, and a failed write degrades to
// in-memory state with a logged warning instead of surfacing an error.
type Controller struct {
	mu      sync.RWMutex
	memes   []domain.Meme
	upvoted map[string]bool // session-scoped, reset on restart
	minting map[string]bool

	store     domain.MemeStore
	metrics   *infra.Metrics
	notify    func(string)
	mintDelay time.Duration
}

// NewController creates a controller seeded with initial (newest first).
// notify may be nil; metrics defaults to the process-wide instance.
func NewController(initial []domain.Meme, store domain.MemeStore, notify func(string), metrics *infra.Metrics) *Controller {
	return NewControllerWithConfig(initial, store, notify, metrics, DefaultMintDelay)
}

// NewControllerWithConfig additionally sets the simulated mint delay.
func NewControllerWithConfig(initial []domain.Meme, store domain.MemeStore, notify func(string), metrics *infra.Metrics, mintDelay time.Duration) *Controller {
	if notify == nil {
		notify = func(string) {}
	}
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	if mintDelay <= 0 {
		mintDelay = DefaultMintDelay
	}
	return &Controller{
		memes:     append([]domain.Meme(nil), initial...),
		upvoted:   make(map[string]bool),
		minting:   make(map[string]bool),
		store:     store,
		metrics:   metrics,
		notify:    notify,
		mintDelay: mintDelay,
	}
}

// Memes returns a snapshot of the collection, newest first.
func (c *Controller) Memes() []domain.Meme {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Meme(nil), c.memes...)
}

// Len returns the collection size.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memes)
}

// View runs the query engine over a snapshot of the collection.
func (c *Controller) View(filter FilterStatus, sortBy SortBy, page, pageSize int) Page {
	return View(c.Memes(), filter, sortBy, page, pageSize)
}

// Create prepends meme, keeping the newest-first ordering. Callers should
// reset their pagination to page 1 so the new meme is visible.
func (c *Controller) Create(meme domain.Meme) {
	c.mu.Lock()
	c.memes = append([]domain.Meme{meme}, c.memes...)
	snapshot := append([]domain.Meme(nil), c.memes...)
	c.mu.Unlock()

	c.persist(snapshot)
	c.metrics.RecordMemeCreated()
	c.notify("New meme created successfully!")
}

// Delete removes the meme with the given id. Absent ids are a no-op.
func (c *Controller) Delete(id string) {
	c.mu.Lock()
	kept := c.memes[:0:0]
	removed := false
	for _, m := range c.memes {
		if m.ID == id {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	c.memes = kept
	snapshot := append([]domain.Meme(nil), c.memes...)
	c.mu.Unlock()

	if !removed {
		return
	}
	c.persist(snapshot)
	c.metrics.RecordMemeDeleted()
	c.notify("Meme successfully deleted.")
}

// Upvote increments the score by exactly one, at most once per meme per
// session. Restarting the process clears the flag, so upvoting again
// after a reload is allowed. Returns whether the vote was counted.
func (c *Controller) Upvote(id string) bool {
	c.mu.Lock()
	if c.upvoted[id] {
		c.mu.Unlock()
		return false
	}
	found := false
	for i := range c.memes {
		if c.memes[i].ID == id {
			c.memes[i].Score++
			found = true
			break
		}
	}
	if !found {
		c.mu.Unlock()
		return false
	}
	c.upvoted[id] = true
	snapshot := append([]domain.Meme(nil), c.memes...)
	c.mu.Unlock()

	c.persist(snapshot)
	c.metrics.RecordUpvote()
	return true
}

// HasUpvoted reports whether this session has already counted a vote for id.
func (c *Controller) HasUpvoted(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.upvoted[id]
}

// Mint flips minted to true after the simulated processing delay. The
// transition is one-way and idempotent: minting an already-minted meme is
// a no-op, as is minting a deleted id. Other operations proceed while the
// delay runs; only the in-flight flag for this id is held.
func (c *Controller) Mint(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.minting[id] {
		c.mu.Unlock()
		return nil
	}
	c.minting[id] = true
	c.mu.Unlock()
	c.metrics.MintStarted()

	defer func() {
		c.mu.Lock()
		delete(c.minting, id)
		c.mu.Unlock()
		c.metrics.MintFinished()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.mintDelay):
	}

	c.mu.Lock()
	changed := false
	for i := range c.memes {
		if c.memes[i].ID == id {
			if !c.memes[i].Minted {
				c.memes[i].Minted = true
				changed = true
			}
			break
		}
	}
	snapshot := append([]domain.Meme(nil), c.memes...)
	c.mu.Unlock()

	if changed {
		c.persist(snapshot)
		c.metrics.RecordMintCompleted()
		c.notify(fmt.Sprintf("Meme #%s successfully minted!", domain.ShortID(id)))
	}
	return nil
}

// MintPending reports whether a mint for id is currently in flight, so a
// UI can show per-meme progress rather than a global spinner.
func (c *Controller) MintPending(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.minting[id]
}

func (c *Controller) persist(snapshot []domain.Meme) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveMemes(snapshot); err != nil {
		slog.Warn("Failed to persist meme collection", slog.Any("error", err))
		c.metrics.RecordStorageError()
	}
}
