package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/api"
	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/auth"
	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

type categoryAddCmd struct{}

func (categoryAddCmd) Name() string        { return "category-add" }
func (categoryAddCmd) Description() string { return "Создать категорию" }
func (categoryAddCmd) Usage() string       { return "category-add <name>" }

func (categoryAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	// имя может состоять из нескольких слов
	name := strings.Join(args, " ")
	resp, body, err := api.PostJSON(apiURL(cfg, "/api/v1/categories"),
		map[string]string{"name": name}, token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusCreated {
		return api.APIError(resp.StatusCode, body)
	}

	var c categoryView
	if err := json.Unmarshal(body, &c); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Created category %s (%s)\n", c.Name, c.ID)
	return nil
}

func init() { RegisterCmd(categoryAddCmd{}) }
