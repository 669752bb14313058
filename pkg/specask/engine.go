package specask

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"specask/pkg/encoder"
	"specask/pkg/store"
)

// Composer turns a query and its ranked sections into answer text.
// Implementations must always return text, even for empty results or when an
// external generation service fails.
type Composer interface {
	Compose(ctx context.Context, query string, results []Result) string
}

// Response is the outcome of one Ask call.
type Response struct {
	ID      uuid.UUID
	Query   string
	Results []Result
	Answer  string
}

// Engine wires the query pipeline together: encode, rank, compose. It is
// constructed once and safe for concurrent Ask calls: the store is read-only
// and the encoder is stateless per call.
type Engine struct {
	store    *store.Store
	enc      encoder.Encoder
	composer Composer
	logger   *zap.Logger
}

// NewEngine builds an engine over a loaded store. It fails fast when the
// encoder's dimensionality does not match a non-empty store, rather than
// letting every query compute garbage scores.
func NewEngine(s *store.Store, enc encoder.Encoder, composer Composer, logger *zap.Logger) (*Engine, error) {
	if s.Size() > 0 && enc.Dimension() != s.Dimension() {
		return nil, fmt.Errorf("%w: encoder %s has %d, snapshot (%s) has %d",
			ErrDimensionMismatch, enc.Model(), enc.Dimension(), s.Model(), s.Dimension())
	}
	return &Engine{
		store:    s,
		enc:      enc,
		composer: composer,
		logger:   logger,
	}, nil
}

// Ask answers a single query: the text is embedded, scored against the store,
// and the top-k sections are composed into answer text. Encoding and
// dimensionality failures abort the query; generation-service faults never do
// (the composer falls back to local assembly).
func (e *Engine) Ask(ctx context.Context, query string, k int) (*Response, error) {
	id := uuid.New()

	vec, err := e.enc.Encode(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	results, err := Rank(e.store, vec, k)
	if err != nil {
		return nil, err
	}

	fields := []zap.Field{
		zap.String("query_id", id.String()),
		zap.Int("results", len(results)),
	}
	if len(results) > 0 {
		fields = append(fields, zap.Float32("top_score", results[0].Score))
	}
	e.logger.Debug("ranked query", fields...)

	answer := e.composer.Compose(ctx, query, results)

	return &Response{
		ID:      id,
		Query:   query,
		Results: results,
		Answer:  answer,
	}, nil
}

// Store exposes the engine's store for callers that display snapshot metadata.
func (e *Engine) Store() *store.Store { return e.store }
