package answer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"specask/pkg/specask"
	"specask/pkg/store"
)

type fakeGenerator struct {
	text string
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, system, user string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func result(index int, text string, score float32) specask.Result {
	return specask.Result{
		Chunk: store.Chunk{Index: index, Text: text},
		Score: score,
	}
}

func interfaceResults() []specask.Result {
	return []specask.Result{
		result(0, "Интерфейс\nТребования к интерфейсу бота.", 0.82),
		result(2, "Оплата\nПроцесс оплаты заказа.", 0.41),
	}
}

func TestCompose_LocalNeverEmpty(t *testing.T) {
	c := NewComposer(nil, ModeLocal, zap.NewNop())

	tests := []struct {
		name    string
		query   string
		results []specask.Result
	}{
		{name: "no results", query: "вопрос", results: nil},
		{name: "empty query", query: "", results: interfaceResults()},
		{name: "all below threshold", query: "вопрос", results: []specask.Result{
			result(0, "Раздел\nтекст", 0.1),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := c.Compose(context.Background(), tt.query, tt.results)
			assert.NotEmpty(t, out)
		})
	}
}

func TestCompose_LocalKeywordBlocks(t *testing.T) {
	c := NewComposer(nil, ModeLocal, zap.NewNop())

	out := c.Compose(context.Background(), "Какие требования к интерфейсу?", interfaceResults())
	assert.Contains(t, out, "Пользовательский интерфейс")

	out = c.Compose(context.Background(), "Как происходит оплата заказа?", []specask.Result{
		result(1, "Оплата\nГенерация QR-кода.", 0.7),
	})
	assert.Contains(t, out, "QR-кода")

	out = c.Compose(context.Background(), "Какой функционал у бота?", []specask.Result{
		result(2, "Возможности\nОписание возможностей.", 0.7),
	})
	assert.Contains(t, out, "Корзина для выбора товаров")
}

func TestCompose_LocalKeywordPriority(t *testing.T) {
	c := NewComposer(nil, ModeLocal, zap.NewNop())

	// Both интерфейс (query) and оплат (section) match; the interface rule
	// comes first in the table and must win.
	out := c.Compose(context.Background(), "вопрос про интерфейс", []specask.Result{
		result(0, "Раздел\nЗдесь описана оплата.", 0.9),
	})
	assert.Contains(t, out, "Пользовательский интерфейс")
	assert.NotContains(t, out, "QR-кода")
}

func TestCompose_LocalGenericBlock(t *testing.T) {
	c := NewComposer(nil, ModeLocal, zap.NewNop())

	out := c.Compose(context.Background(), "Сроки разработки?", []specask.Result{
		result(3, "Сроки\nЭтапы и сроки работ.", 0.55),
	})
	assert.Contains(t, out, "Содержится в разделе 'Сроки'")
	assert.Contains(t, out, "0.550")
}

func TestCompose_LocalThresholdFiltering(t *testing.T) {
	c := NewComposer(nil, ModeLocal, zap.NewNop())

	out := c.Compose(context.Background(), "вопрос", []specask.Result{
		result(0, "Интерфейс\nкнопки", 0.2),
	})
	assert.NotContains(t, out, "Пользовательский интерфейс")
}

func TestCompose_LocalShortAnswerHint(t *testing.T) {
	c := NewComposer(nil, ModeLocal, zap.NewNop())

	out := c.Compose(context.Background(), "вопрос", nil)
	assert.Contains(t, out, "💡")
}

func TestCompose_ExternalSuccess(t *testing.T) {
	gen := &fakeGenerator{text: "Ответ из API."}
	c := NewComposer(gen, ModeExternal, zap.NewNop())

	out := c.Compose(context.Background(), "вопрос", interfaceResults())
	assert.Equal(t, "Ответ из API.", out)
}

func TestCompose_ExternalFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	c := NewComposer(gen, ModeExternal, zap.NewNop())

	query := "Какие требования к интерфейсу?"
	results := interfaceResults()

	out := c.Compose(context.Background(), query, results)
	local := localAnswer(query, results)

	assert.True(t, strings.HasPrefix(out, "Ошибка API:"))
	assert.Contains(t, out, "quota exceeded")
	assert.True(t, strings.HasSuffix(out, local))
}

func TestNewComposer_NilGeneratorForcesLocal(t *testing.T) {
	c := NewComposer(nil, ModeExternal, zap.NewNop())
	assert.Equal(t, ModeLocal, c.Mode())
}

func TestBuildUserContent(t *testing.T) {
	user := buildUserContent("Какие требования к интерфейсу?", interfaceResults())

	assert.Contains(t, user, "ИНФОРМАЦИЯ ИЗ ТЕХНИЧЕСКОГО ЗАДАНИЯ:")
	assert.Contains(t, user, "=== РАЗДЕЛ 1 ===")
	assert.Contains(t, user, "=== РАЗДЕЛ 2 ===")
	assert.Contains(t, user, "Заголовок: Интерфейс")
	assert.Contains(t, user, "Сходство: 0.820")
	assert.Contains(t, user, "Вопрос: Какие требования к интерфейсу?")
}

func TestExcerpt_Truncation(t *testing.T) {
	long := strings.Repeat("ф", ExcerptRunes+50)
	got := excerpt(long)

	require.Equal(t, ExcerptRunes+3, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))

	short := "короткий текст"
	assert.Equal(t, short, excerpt(short))
}
