// Package encoder maps query text to unit-normalized embedding vectors using
// an external embedding model. The pipeline relies on two properties of every
// Encoder: the dimensionality matches the snapshot's, and vectors are
// L2-normalized so a plain dot product equals cosine similarity.
package encoder

import (
	"context"
	"errors"
	"math"
)

// ErrEmptyQuery is returned when the input is empty or whitespace-only.
// Empty input is rejected rather than encoded: the embedding API errors on
// empty strings anyway, and rejecting locally fails faster and clearer.
var ErrEmptyQuery = errors.New("encoder: empty query text")

// Encoder generates embeddings for text.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	Model() string
}

// Normalize scales v to unit length in place. A zero vector is left unchanged.
func Normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
