// Package store holds the precomputed (section text, embedding) pairs the
// question-answering pipeline searches against. The snapshot is produced once
// by the indexer and is read-only for the lifetime of the process.
package store

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"strings"
)

// PreviewRunes bounds the length of a chunk preview.
const PreviewRunes = 150

var (
	// ErrCountMismatch means the snapshot's text and vector arrays disagree in length.
	ErrCountMismatch = errors.New("store: section and embedding counts differ")
	// ErrDimension means the snapshot's vectors do not share one dimensionality.
	ErrDimension = errors.New("store: inconsistent embedding dimensionality")
)

// Snapshot is the on-disk format: two parallel arrays plus model metadata.
// Texts[i] corresponds to Vectors[i]; the pairing and ordering are the contract.
type Snapshot struct {
	Texts     []string
	Vectors   [][]float32
	Model     string
	Dimension int
}

// Chunk is one retrievable section of the source document.
type Chunk struct {
	Index int
	Text  string
}

// Title returns the first line of the section text.
func (c Chunk) Title() string {
	line, _, _ := strings.Cut(c.Text, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "Без заголовка"
	}
	return line
}

// Preview returns the first PreviewRunes runes of the section text, with an
// ellipsis suffix when truncated. Runes rather than bytes: the corpus is
// Russian and byte slicing would split UTF-8 sequences.
func (c Chunk) Preview() string {
	r := []rune(c.Text)
	if len(r) <= PreviewRunes {
		return c.Text
	}
	return string(r[:PreviewRunes]) + "..."
}

// Store is the immutable in-memory embedding table. Safe for concurrent
// readers; never mutated after New.
type Store struct {
	chunks  []Chunk
	vectors [][]float32
	model   string
	dim     int
}

// New validates a snapshot and builds a Store from it. An empty snapshot is
// valid and yields a store of size zero.
func New(snap *Snapshot) (*Store, error) {
	if len(snap.Texts) != len(snap.Vectors) {
		return nil, fmt.Errorf("%w: %d sections, %d embeddings",
			ErrCountMismatch, len(snap.Texts), len(snap.Vectors))
	}

	dim := snap.Dimension
	if dim == 0 && len(snap.Vectors) > 0 {
		dim = len(snap.Vectors[0])
	}
	for i, v := range snap.Vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: embedding %d has %d dimensions, want %d",
				ErrDimension, i, len(v), dim)
		}
	}

	chunks := make([]Chunk, len(snap.Texts))
	for i, text := range snap.Texts {
		chunks[i] = Chunk{Index: i, Text: text}
	}

	return &Store{
		chunks:  chunks,
		vectors: snap.Vectors,
		model:   snap.Model,
		dim:     dim,
	}, nil
}

// Load reads and validates a gob snapshot from path.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open snapshot %s: %w", path, err)
	}
	defer file.Close()

	var snap Snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("store: decode snapshot %s: %w", path, err)
	}

	return New(&snap)
}

// Write validates a snapshot and writes it to path as gob.
func Write(path string, snap *Snapshot) error {
	if _, err := New(snap); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("store: create snapshot %s: %w", path, err)
	}

	if err := gob.NewEncoder(file).Encode(snap); err != nil {
		file.Close()
		return fmt.Errorf("store: encode snapshot %s: %w", path, err)
	}
	return file.Close()
}

// Size returns the number of stored sections.
func (s *Store) Size() int { return len(s.chunks) }

// Dimension returns the shared embedding dimensionality.
func (s *Store) Dimension() int { return s.dim }

// Model returns the name of the embedding model the snapshot was built with.
func (s *Store) Model() string { return s.model }

// Chunk returns the section at position i.
func (s *Store) Chunk(i int) Chunk { return s.chunks[i] }

// Vector returns the embedding at position i. Callers must not modify it.
func (s *Store) Vector(i int) []float32 { return s.vectors[i] }
