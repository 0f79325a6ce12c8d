package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/api"
	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/auth"
	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

type acceptCmd struct{}

func (acceptCmd) Name() string { return "accept" }
func (acceptCmd) Description() string {
	return "Принять предложенные карточки (все или по номерам)"
}
func (acceptCmd) Usage() string { return "accept <generationId> [n ...]" }

func (acceptCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}
	id := args[0]

	// without numbers the whole result is accepted with an empty body
	var payload any
	if len(args) > 1 {
		payload, err = buildSelection(cfg, token, id, args[1:])
		if err != nil {
			return err
		}
	}

	resp, body, err := api.PostJSON(apiURL(cfg, "/api/v1/generations/"+id+"/accept"), payload, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.APIError(resp.StatusCode, body)
	}

	var cards []flashcardView
	if err := json.Unmarshal(body, &cards); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	for _, c := range cards {
		fmt.Fprintf(Out, "- %s  %s\n", c.ID, c.Question)
	}
	fmt.Fprintf(Out, "Принято карточек: %d\n", len(cards))
	return nil
}

// buildSelection загружает предложения задачи и выбирает их по номерам (с 1).
func buildSelection(cfg *config.Config, token, id string, nums []string) (any, error) {
	resp, body, err := api.GetJSON(apiURL(cfg, "/api/v1/generations/"+id), token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, api.APIError(resp.StatusCode, body)
	}
	var g generationView
	if err := json.Unmarshal(body, &g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	picked := make([]suggestionView, 0, len(nums))
	for _, raw := range nums {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > len(g.Suggestions) {
			return nil, fmt.Errorf("no suggestion #%s (task has %d)", raw, len(g.Suggestions))
		}
		picked = append(picked, g.Suggestions[n-1])
	}
	return map[string]any{"flashcards": picked}, nil
}

func init() { RegisterCmd(acceptCmd{}) }
