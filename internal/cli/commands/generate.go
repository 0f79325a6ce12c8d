package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/api"
	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/auth"
	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

type generateCmd struct{}

func (generateCmd) Name() string { return "generate" }
func (generateCmd) Description() string {
	return "Отправить текст на генерацию карточек (файл или - для stdin)"
}
func (generateCmd) Usage() string { return "generate <file|-> [categoryId]" }

func (generateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	var text []byte
	if args[0] == "-" {
		text, err = io.ReadAll(os.Stdin)
	} else {
		text, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading source text: %w", err)
	}

	payload := map[string]any{"sourceText": string(text)}
	if len(args) == 2 {
		payload["categoryId"] = args[1]
	}
	resp, body, err := api.PostJSON(apiURL(cfg, "/api/v1/generations"), payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusAccepted {
		return api.APIError(resp.StatusCode, body)
	}

	var g generationView
	if err := json.Unmarshal(body, &g); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Generation %s submitted (status=%s, model=%s)\n", g.ID, g.Status, g.ModelUsed)
	fmt.Fprintf(Out, "Follow it with: cardsctl watch %s\n", g.ID)
	return nil
}

func init() { RegisterCmd(generateCmd{}) }
