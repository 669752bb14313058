package encoder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI encodes text through an OpenAI-compatible embeddings endpoint.
type OpenAI struct {
	client *openai.Client
	model  string
	dim    int
}

// NewOpenAI creates an encoder for the given model. baseURL may be empty for
// the default OpenAI endpoint.
func NewOpenAI(apiKey, baseURL, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("encoder: API key not set")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	// Dimension is fixed by the model.
	dim := 1536 // text-embedding-3-small
	if model == "text-embedding-3-large" {
		dim = 3072
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		dim:    dim,
	}, nil
}

// Encode generates a unit-normalized embedding for a single text.
func (e *OpenAI) Encode(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQuery
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("encoder: embedding request: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("encoder: no embedding data in response")
	}

	raw := resp.Data[0].Embedding
	v := make([]float32, len(raw))
	for i := range raw {
		v[i] = float32(raw[i])
	}

	Normalize(v)
	return v, nil
}

// EncodeBatch encodes texts with bounded parallelism, preserving order.
// progressFn, when non-nil, is called with (completed, total) after each text.
func (e *OpenAI) EncodeBatch(ctx context.Context, texts []string, progressFn func(int, int)) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	errChan := make(chan error, len(texts))
	sem := make(chan struct{}, 10) // limit concurrent API calls

	var wg sync.WaitGroup
	for i := range texts {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			v, err := e.Encode(ctx, texts[idx])
			if err != nil {
				errChan <- fmt.Errorf("text %d: %w", idx, err)
				return
			}
			vectors[idx] = v
			errChan <- nil
		}(i)
	}

	wg.Wait()
	close(errChan)

	done := 0
	for err := range errChan {
		if err != nil {
			return nil, err
		}
		done++
		if progressFn != nil {
			progressFn(done, len(texts))
		}
	}

	return vectors, nil
}

// Dimension returns the embedding dimension.
func (e *OpenAI) Dimension() int { return e.dim }

// Model returns the model name.
func (e *OpenAI) Model() string { return e.model }
