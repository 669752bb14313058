package answer

import (
	"fmt"
	"strings"

	"specask/pkg/specask"
)

// localRule pairs a keyword set with the canned block it triggers. Rules are
// evaluated in order against the lowercased query and section text; the first
// match wins.
type localRule struct {
	keywords []string
	block    string
}

var localRules = []localRule{
	{
		keywords: []string{"интерфейс"},
		block: "• Пользовательский интерфейс с кнопками: 'Меню', 'Корзина', 'История заказов', 'Акции'\n" +
			"• Административный интерфейс для сотрудников\n" +
			"• Интуитивно понятная навигация\n\n",
	},
	{
		keywords: []string{"оплат"},
		block: "• Генерация QR-кода для оплаты\n" +
			"• Уведомление об успешной оплате\n" +
			"• Интеграция с платежной системой\n\n",
	},
	{
		keywords: []string{"функци"},
		block: "• Меню товаров с ценами\n" +
			"• Корзина для выбора товаров\n" +
			"• История заказов и статусы\n\n",
	},
}

// matchRule returns the first rule whose keywords appear in the query or the
// section text, both lowercased.
func matchRule(query, content string) (localRule, bool) {
	q := strings.ToLower(query)
	c := strings.ToLower(content)
	for _, rule := range localRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) || strings.Contains(c, kw) {
				return rule, true
			}
		}
	}
	return localRule{}, false
}

// localAnswer assembles a deterministic answer from the ranked sections. It is
// pure and always returns non-empty text, including for empty results.
func localAnswer(query string, results []specask.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ОТВЕТ на вопрос: '%s'\n\n", query)
	b.WriteString("На основе технического задания:\n\n")

	if len(results) == 0 {
		b.WriteString("В техническом задании не найдено релевантной информации по этому запросу.\n")
	}

	for _, r := range results {
		if r.Score <= RelevanceThreshold {
			continue
		}
		fmt.Fprintf(&b, "📄 %s\n", r.Chunk.Title())

		if rule, ok := matchRule(query, r.Chunk.Text); ok {
			b.WriteString(rule.block)
		} else {
			fmt.Fprintf(&b, "• Содержится в разделе '%s'\n", r.Chunk.Title())
			fmt.Fprintf(&b, "• Релевантность: %.3f\n\n", r.Score)
		}
	}

	answer := b.String()
	if len(strings.Split(answer, "\n")) < minAnswerLines {
		answer += "\n💡 Для более точного ответа уточните вопрос или используйте реальный API ключ."
	}
	return answer
}
