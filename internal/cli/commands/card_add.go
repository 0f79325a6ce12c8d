package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/api"
	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/auth"
	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

type cardAddCmd struct{}

func (cardAddCmd) Name() string        { return "card-add" }
func (cardAddCmd) Description() string { return "Создать фишку вручную" }
func (cardAddCmd) Usage() string       { return "card-add <question> <answer> [categoryId]" }

func (cardAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	payload := map[string]any{"question": args[0], "answer": args[1]}
	if len(args) == 3 {
		payload["categoryId"] = args[2]
	}
	resp, body, err := api.PostJSON(apiURL(cfg, "/api/v1/flashcards"), payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return api.APIError(resp.StatusCode, body)
	}

	var card flashcardView
	if err := json.Unmarshal(body, &card); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Created flashcard %s\n", card.ID)
	return nil
}

func init() { RegisterCmd(cardAddCmd{}) }
