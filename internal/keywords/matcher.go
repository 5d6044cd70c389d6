// Package keywords — классификация текста по фразам о проблемах (urgent/mild).
package keywords

import (
	"strings"

	"github.com/larriantoniy/tg_support_watcher/internal/domain"
)

// Matcher хранит неизменяемые наборы фраз. Безопасен для конкурентного использования.
type Matcher struct {
	urgent []string
	mild   []string
}

// New нормализует фразы: нижний регистр, без пустых и без повторов.
func New(urgent, mild []string) *Matcher {
	return &Matcher{
		urgent: normalize(urgent),
		mild:   normalize(mild),
	}
}

// Default — встроенные списки для крипто-саппорта
func Default() *Matcher {
	return New(defaultUrgent, defaultMild)
}

// Classify: Urgent проверяется первым и побеждает при пересечении с Mild.
func (m *Matcher) Classify(text string) domain.Priority {
	if text == "" {
		return domain.Unmatched
	}
	lower := strings.ToLower(text)
	if containsAny(lower, m.urgent) {
		return domain.Urgent
	}
	if containsAny(lower, m.mild) {
		return domain.Mild
	}
	return domain.Unmatched
}

// Matches — одноуровневый вариант: есть ли хоть какое-то совпадение
func (m *Matcher) Matches(text string) bool {
	return m.Classify(text) != domain.Unmatched
}

func (m *Matcher) Sizes() (urgent, mild int) {
	return len(m.urgent), len(m.mild)
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func normalize(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		// пустая фраза совпала бы с любым текстом
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
