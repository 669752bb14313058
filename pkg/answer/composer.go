// Package answer composes grounded answers from ranked specification
// sections, either through an external text-generation service or through a
// deterministic local rule table.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"specask/pkg/specask"
)

// Mode selects how answers are produced.
type Mode string

const (
	// ModeExternal sends the retrieved context to a generation service,
	// falling back to local assembly on any fault.
	ModeExternal Mode = "external"
	// ModeLocal uses only the deterministic rule table.
	ModeLocal Mode = "local"
)

const (
	// RelevanceThreshold is the minimum score for a section to contribute to a
	// local answer. Kept from the original system, no derivation stated there.
	RelevanceThreshold float32 = 0.3
	// ExcerptRunes bounds the section excerpt embedded in the prompt.
	ExcerptRunes = 500

	maxAnswerTokens   = 500
	answerTemperature = 0.3
	minAnswerLines    = 10
)

const systemInstruction = "Ты помощник по техническому заданию Telegram-бота кофейни. " +
	"Отвечай ТОЛЬКО на основе предоставленного контекста."

// Composer builds answer text from ranked sections. The zero value is not
// usable; construct with NewComposer.
type Composer struct {
	gen    Generator
	mode   Mode
	logger *zap.Logger
}

// NewComposer creates a composer. gen may be nil, in which case the mode is
// forced to ModeLocal.
func NewComposer(gen Generator, mode Mode, logger *zap.Logger) *Composer {
	if gen == nil {
		mode = ModeLocal
	}
	return &Composer{gen: gen, mode: mode, logger: logger}
}

// Mode reports the composer's effective mode.
func (c *Composer) Mode() Mode { return c.mode }

// Compose returns answer text for the query. It never fails: external
// generation faults are logged, surfaced as a diagnostic line, and followed by
// the local answer, so the caller always receives text.
func (c *Composer) Compose(ctx context.Context, query string, results []specask.Result) string {
	if c.mode != ModeExternal {
		return localAnswer(query, results)
	}

	text, err := c.gen.Generate(ctx, systemInstruction, buildUserContent(query, results))
	if err != nil {
		c.logger.Warn("generation failed, using local answer", zap.Error(err))
		return fmt.Sprintf("Ошибка API: %v\n\n%s", err, localAnswer(query, results))
	}
	return text
}

// buildUserContent formats the retrieved sections and the question into the
// prompt sent to the generation service.
func buildUserContent(query string, results []specask.Result) string {
	var b strings.Builder
	b.WriteString("ИНФОРМАЦИЯ ИЗ ТЕХНИЧЕСКОГО ЗАДАНИЯ:\n\n")

	for i, r := range results {
		fmt.Fprintf(&b, "=== РАЗДЕЛ %d ===\n", i+1)
		fmt.Fprintf(&b, "Заголовок: %s\n", r.Chunk.Title())
		fmt.Fprintf(&b, "Сходство: %.3f\n", r.Score)
		fmt.Fprintf(&b, "Содержание:\n%s\n\n", excerpt(r.Chunk.Text))
	}

	fmt.Fprintf(&b, "\nВопрос: %s", query)
	return b.String()
}

// excerpt returns the first ExcerptRunes runes of text, with an ellipsis
// suffix when truncated.
func excerpt(text string) string {
	r := []rune(text)
	if len(r) <= ExcerptRunes {
		return text
	}
	return string(r[:ExcerptRunes]) + "..."
}
