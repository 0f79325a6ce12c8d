package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
)

// MockGenerator — детерминированный генератор для разработки без ключа API
// и для тестов: режет текст на предложения и делает из них карточки.
type MockGenerator struct {
	// MaxCards ограничивает число карточек (0 — значение по умолчанию 5).
	MaxCards int
	// Delay имитирует латентность модели.
	Delay time.Duration
}

func (g *MockGenerator) Generate(ctx context.Context, sourceText, llmModel string) ([]model.Suggestion, error) {
	if g.Delay > 0 {
		select {
		case <-time.After(g.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	maxCards := g.MaxCards
	if maxCards <= 0 {
		maxCards = 5
	}

	out := make([]model.Suggestion, 0, maxCards)
	for _, sentence := range splitSentences(sourceText) {
		if len(out) == maxCards {
			break
		}
		out = append(out, model.Suggestion{
			Question: fmt.Sprintf("What does the source say about: %s?", headWords(sentence, 6)),
			Answer:   sentence,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("source text has no usable sentences")
	}
	return out, nil
}

// splitSentences режет текст на предложения по . ! ?
func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		// слишком короткие обрывки не годятся в ответ
		if len(p) >= 20 {
			out = append(out, p)
		}
	}
	return out
}

// headWords возвращает первые n слов предложения.
func headWords(sentence string, n int) string {
	words := strings.Fields(sentence)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
