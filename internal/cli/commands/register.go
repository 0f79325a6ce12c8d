package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/api"
	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store auth cookie" }
func (registerCmd) Usage() string       { return "register <email> <password>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	req := RegisterRequest{Email: args[0], Password: args[1]}
	resp, body, err := api.PostJSON(apiURL(cfg, "/api/v1/auth/signup"), req, "")
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusConflict {
			return errors.New("email is already registered")
		}
		return api.APIError(resp.StatusCode, body)
	}
	if err := api.PersistAuthFromResponse(resp); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintln(Out, "Registered and logged in")
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
