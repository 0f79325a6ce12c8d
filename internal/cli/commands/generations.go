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

type generationsCmd struct{}

func (generationsCmd) Name() string        { return "generations" }
func (generationsCmd) Description() string { return "Показать задачи генерации" }
func (generationsCmd) Usage() string       { return "generations [page]" }

func (generationsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 1 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}

	page := 1
	if len(args) == 1 {
		page, err = strconv.Atoi(args[0])
		if err != nil || page < 1 {
			return ErrUsage
		}
	}

	resp, body, err := api.GetJSON(apiURL(cfg, fmt.Sprintf("/api/v1/generations?page=%d", page)), token)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.APIError(resp.StatusCode, body)
	}

	var pageResp pageView[generationView]
	if err := json.Unmarshal(body, &pageResp); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(pageResp.Data) == 0 {
		fmt.Fprintln(Out, "Нет задач")
		return nil
	}
	for _, g := range pageResp.Data {
		extra := ""
		if g.ErrorMessage != "" {
			extra = "  error=" + g.ErrorMessage
		}
		fmt.Fprintf(Out, "- %s  %-10s %3d%%  model=%s%s\n", g.ID, g.Status, g.Progress, g.ModelUsed, extra)
	}
	fmt.Fprintf(Out, "Страница %d из %d, всего задач: %d\n",
		pageResp.Pagination.Page, pageResp.Pagination.TotalPages, pageResp.Pagination.TotalItems)
	return nil
}

func init() { RegisterCmd(generationsCmd{}) }
