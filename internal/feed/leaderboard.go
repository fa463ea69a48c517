package feed

import (
	"sort"

	"odinary_go/internal/domain"
)

// TopByScore returns the n highest-scoring memes. Ties keep the input's
// newest-first relative order. The input is not mutated.
func TopByScore(memes []domain.Meme, n int) []domain.Meme {
	if n <= 0 {
		return nil
	}

	ranked := append([]domain.Meme(nil), memes...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
