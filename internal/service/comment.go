package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"odinary_go/internal/domain"

	"github.com/google/uuid"
)

const (
	defaultPostDelay  = 1 * time.Second
	defaultFetchDelay = 800 * time.Millisecond
)

// CommentService manages per-meme comment threads. Reads and writes go
// through an artificial latency window so the caller's loading states
// are exercised the same way a remote backend would.
type CommentService struct {
	store      domain.CommentStore
	postDelay  time.Duration
	fetchDelay time.Duration
	now        func() time.Time

	mu      sync.Mutex
	threads map[string][]domain.Comment
}

// NewCommentService creates a new CommentService instance
func NewCommentService(store domain.CommentStore) *CommentService {
	return &CommentService{
		store:      store,
		postDelay:  defaultPostDelay,
		fetchDelay: defaultFetchDelay,
		now:        time.Now,
		threads:    make(map[string][]domain.Comment),
	}
}

// List returns the comment thread for a meme, oldest first. Storage
// failures degrade to an empty thread; the thread view is never fatal.
func (s *CommentService) List(ctx context.Context, memeID string) ([]domain.Comment, error) {
	if err := sleepCtx(ctx, s.fetchDelay); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if cached, ok := s.threads[memeID]; ok {
		out := make([]domain.Comment, len(cached))
		copy(out, cached)
		s.mu.Unlock()
		return out, nil
	}
	s.mu.Unlock()

	comments, ok, err := s.store.LoadComments(memeID)
	if err != nil {
		slog.Warn("Failed to load comments, showing empty thread",
			slog.String("meme_id", memeID),
			slog.Any("error", err))
		return nil, nil
	}
	if !ok {
		comments = nil
	}

	s.mu.Lock()
	s.threads[memeID] = comments
	s.mu.Unlock()

	out := make([]domain.Comment, len(comments))
	copy(out, comments)
	return out, nil
}

// Post appends a comment to a meme's thread and returns the stored
// comment. Blank text is rejected before any delay is incurred.
func (s *CommentService) Post(ctx context.Context, memeID, author, text string) (domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, &domain.ValidationError{Msg: "comment text must not be empty"}
	}
	if strings.TrimSpace(author) == "" {
		author = "anon"
	}

	if err := sleepCtx(ctx, s.postDelay); err != nil {
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		ID:        "comment-" + uuid.NewString()[:8],
		MemeID:    memeID,
		Author:    author,
		Text:      text,
		Timestamp: s.now().UnixMilli(),
	}

	s.mu.Lock()
	if _, ok := s.threads[memeID]; !ok {
		// First write for this meme this session; pick up any thread
		// persisted by an earlier run before appending.
		if existing, found, err := s.store.LoadComments(memeID); err == nil && found {
			s.threads[memeID] = existing
		}
	}
	thread := append(s.threads[memeID], comment)
	s.threads[memeID] = thread
	snapshot := make([]domain.Comment, len(thread))
	copy(snapshot, thread)
	s.mu.Unlock()

	// The in-memory thread is authoritative for this session; a failed
	// write costs durability, not the posted comment.
	if err := s.store.SaveComments(memeID, snapshot); err != nil {
		slog.Error("Failed to persist comments",
			slog.String("meme_id", memeID),
			slog.Any("error", err))
	}

	return comment, nil
}

// Count returns the cached thread length without touching storage.
func (s *CommentService) Count(memeID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threads[memeID])
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
