package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
)

const systemPrompt = `You are a flashcard author. Given source text, produce concise study flashcards.
Respond with a JSON array only, no prose: [{"question": "...", "answer": "..."}, ...].
Questions must be at most 200 characters, answers at most 500 characters.`

// chatMessage — сообщение в формате OpenAI chat completions.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// OpenRouterGenerator вызывает OpenAI-совместимый chat-completions API
// (OpenRouter) и разбирает ответ модели в предложения карточек.
type OpenRouterGenerator struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewOpenRouter создаёт генератор поверх OpenRouter-совместимого API.
func NewOpenRouter(baseURL, apiKey string) *OpenRouterGenerator {
	return &OpenRouterGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpc:   &http.Client{Timeout: 120 * time.Second},
	}
}

func (g *OpenRouterGenerator) Generate(ctx context.Context, sourceText, llmModel string) ([]model.Suggestion, error) {
	payload := chatRequest{
		Model: llmModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: sourceText},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling chat completions: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return nil, fmt.Errorf("decoding chat response: %w", err)
	}
	if cr.Error != nil {
		return nil, fmt.Errorf("upstream error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("upstream returned no choices")
	}

	return parseSuggestions(cr.Choices[0].Message.Content)
}

// parseSuggestions достаёт JSON-массив карточек из ответа модели.
// Модели любят заворачивать JSON в ```-ограждения и пояснения,
// поэтому берём текст между первой '[' и последней ']'.
func parseSuggestions(content string) ([]model.Suggestion, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array in model output")
	}

	var suggestions []model.Suggestion
	if err := json.Unmarshal([]byte(content[start:end+1]), &suggestions); err != nil {
		return nil, fmt.Errorf("parsing model output: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("model output contained no flashcards")
	}
	return suggestions, nil
}
