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

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Check server health and stored auth" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}

	resp, body, err := api.GetJSON(apiURL(cfg, "/health"), "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return api.APIError(resp.StatusCode, body)
	}
	var hr struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &hr); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	fmt.Fprintf(Out, "Server: %s\n", hr.Status)

	token, err := auth.LoadToken()
	if err != nil {
		fmt.Fprintln(Out, "Auth: no stored token, run login first")
		return nil
	}
	resp, _, err = api.GetJSON(apiURL(cfg, "/api/v1/categories"), token)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusOK {
		fmt.Fprintln(Out, "Auth: ok")
	} else {
		fmt.Fprintln(Out, "Auth: token rejected, run login again")
	}
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
