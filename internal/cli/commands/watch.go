package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/api"
	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/auth"
	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

// pollInterval — период опроса при недоступном SSE-стриме.
var pollInterval = 5 * time.Second

type watchCmd struct{}

func (watchCmd) Name() string        { return "watch" }
func (watchCmd) Description() string { return "Следить за прогрессом задачи до завершения" }
func (watchCmd) Usage() string       { return "watch <generationId>" }

func (watchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	token, err := auth.LoadToken()
	if err != nil {
		return fmt.Errorf("not logged in: %w", err)
	}
	url := apiURL(cfg, "/api/v1/generations/"+args[0])

	if err := streamProgress(ctx, url, token); err != nil {
		fmt.Fprintf(Out, "stream unavailable (%v), polling every %s\n", err, pollInterval)
		return pollProgress(ctx, url, token)
	}
	return nil
}

type streamEvent struct {
	Type     string `json:"type"`
	Progress int    `json:"progress"`
}

// streamProgress читает SSE-события до терминального. Ошибка означает,
// что стрим не открылся или оборвался и нужен поллинг.
func streamProgress(ctx context.Context, url, token string) error {
	resp, err := api.OpenStream(url, token)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	sc := bufio.NewScanner(resp.Body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev streamEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			continue
		}
		switch ev.Type {
		case "progress":
			fmt.Fprintf(Out, "progress: %d%%\n", ev.Progress)
		case "suggestions_ready":
			fmt.Fprintln(Out, "suggestions are ready, accept them with: cardsctl accept <generationId>")
			return nil
		default: // completed / failed / cancelled
			fmt.Fprintf(Out, "finished: %s\n", ev.Type)
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return fmt.Errorf("stream closed before terminal event")
}

func pollProgress(ctx context.Context, url, token string) error {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		resp, body, err := api.GetJSON(url, token)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return api.APIError(resp.StatusCode, body)
		}
		var g generationView
		if err := json.Unmarshal(body, &g); err != nil {
			return fmt.Errorf("decode: %w", err)
		}

		fmt.Fprintf(Out, "progress: %d%% (%s)\n", g.Progress, g.Status)
		if terminal(g.Status) {
			fmt.Fprintf(Out, "finished: %s\n", g.Status)
			return nil
		}
		if g.Progress >= 100 {
			fmt.Fprintln(Out, "suggestions are ready, accept them with: cardsctl accept <generationId>")
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func init() { RegisterCmd(watchCmd{}) }
