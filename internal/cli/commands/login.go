package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/api"
	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store auth cookie" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	req := LoginRequest{Email: args[0], Password: args[1]}
	resp, body, err := api.PostJSON(apiURL(cfg, "/api/v1/auth/login"), req, "")
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return errors.New("invalid email or password")
	}
	if resp.StatusCode != http.StatusOK {
		return api.APIError(resp.StatusCode, body)
	}
	if err := api.PersistAuthFromResponse(resp); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
