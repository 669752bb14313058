// Package specask implements retrieval over a fixed specification document:
// a query embedding is scored against every stored section embedding and the
// top-k matches feed answer composition.
package specask

import (
	"errors"
	"fmt"
	"sort"

	"specask/pkg/store"
)

// ErrDimensionMismatch means the query embedding and the store disagree on
// vector dimensionality. Scores computed across mismatched shapes would be
// meaningless, so this is never tolerated silently.
var ErrDimensionMismatch = errors.New("specask: query and store embedding dimensions differ")

// Result is one ranked section for a single query.
type Result struct {
	Chunk store.Chunk
	Score float32
}

// Rank scores queryVec against every stored embedding and returns the
// min(k, store size) highest-scoring sections in descending score order.
// Both sides are unit-normalized, so the dot product is cosine similarity.
// Ties are broken by ascending section index. k <= 0 and an empty store both
// yield an empty result without error.
func Rank(s *store.Store, queryVec []float32, k int) ([]Result, error) {
	if s.Size() == 0 || k <= 0 {
		return nil, nil
	}
	if len(queryVec) != s.Dimension() {
		return nil, fmt.Errorf("%w: query has %d, store has %d",
			ErrDimensionMismatch, len(queryVec), s.Dimension())
	}

	results := make([]Result, s.Size())
	for i := 0; i < s.Size(); i++ {
		results[i] = Result{
			Chunk: s.Chunk(i),
			Score: dot(s.Vector(i), queryVec),
		}
	}

	// Stable sort keeps equal scores in ascending index order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
