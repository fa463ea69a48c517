// Package feed owns the canonical meme collection and the query engine
// that turns it into filtered, sorted, paginated views.
package feed

import (
	"sort"

	"odinary_go/internal/domain"
)

// FilterStatus selects memes by minted state.
type FilterStatus string

const (
	FilterAll       FilterStatus = "all"
	FilterMinted    FilterStatus = "minted"
	FilterNotMinted FilterStatus = "not_minted"
)

// SortBy selects the feed ordering. Newest-first is the collection's
// structural order (new memes are prepended), so SortNewest is a stable
// passthrough.
type SortBy string

const (
	SortNewest    SortBy = "newest"
	SortOldest    SortBy = "oldest"
	SortScoreDesc SortBy = "score_desc"
	SortScoreAsc  SortBy = "score_asc"
)

// DefaultPageSize matches the feed grid of nine cards.
const DefaultPageSize = 9

// Page is one paginated window of the filtered, sorted feed.
type Page struct {
	Items      []domain.Meme
	TotalCount int
	Page       int // 1-indexed, clamped into the valid range
}

// View recomputes the full filter → sort → paginate chain. No state is
// cached between calls; collections are small enough that correctness
// wins over incremental bookkeeping.
//
// A page past the end (after a delete or filter shrinks the result set)
// clamps to the last populated page so the caller never shows an empty
// page while a populated one exists.
func View(memes []domain.Meme, filter FilterStatus, sortBy SortBy, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	filtered := applyFilter(memes, filter)
	sorted := applySort(filtered, sortBy)

	total := len(sorted)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{Items: sorted[start:end], TotalCount: total, Page: page}
}

func applyFilter(memes []domain.Meme, filter FilterStatus) []domain.Meme {
	if filter == FilterAll || filter == "" {
		return append([]domain.Meme(nil), memes...)
	}

	out := make([]domain.Meme, 0, len(memes))
	for _, m := range memes {
		switch filter {
		case FilterMinted:
			if m.Minted {
				out = append(out, m)
			}
		case FilterNotMinted:
			if !m.Minted {
				out = append(out, m)
			}
		}
	}
	return out
}

// applySort orders a filtered copy. Score sorts are stable: ties keep the
// pre-sort (newest-first) relative order.
func applySort(memes []domain.Meme, sortBy SortBy) []domain.Meme {
	switch sortBy {
	case SortOldest:
		for i, j := 0, len(memes)-1; i < j; i, j = i+1, j-1 {
			memes[i], memes[j] = memes[j], memes[i]
		}
	case SortScoreDesc:
		sort.SliceStable(memes, func(i, j int) bool {
			return memes[i].Score > memes[j].Score
		})
	case SortScoreAsc:
		sort.SliceStable(memes, func(i, j int) bool {
			return memes[i].Score < memes[j].Score
		})
	}
	return memes
}
