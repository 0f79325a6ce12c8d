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

type categoriesCmd struct{}

func (categoriesCmd) Name() string        { return "categories" }
func (categoriesCmd) Description() string { return "Показать категории" }
func (categoriesCmd) Usage() string       { return "categories" }

func (categoriesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	resp, body, err := api.GetJSON(apiURL(cfg, "/api/v1/categories"), token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.APIError(resp.StatusCode, body)
	}

	var list []categoryView
	if err := json.Unmarshal(body, &list); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет категорий")
		return nil
	}
	for _, c := range list {
		fmt.Fprintf(Out, "- %s  %s\n", c.ID, c.Name)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(categoriesCmd{}) }
