package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/auth"
)

// PostJSON sends a JSON POST request. If token is non-empty, it is passed as auth cookie.
func PostJSON(url string, payload any, token string) (*http.Response, []byte, error) {
	var rd io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(http.MethodPost, url, rd)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, body, nil
}

// GetJSON sends a GET request with optional auth cookie and reads the body.
func GetJSON(url string, token string) (*http.Response, []byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	if token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	return resp, body, nil
}

// OpenStream opens an SSE stream. The caller must close the response body.
func OpenStream(url string, token string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	if token != "" {
		req.Header.Set("Cookie", "auth_token="+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("server status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return resp, nil
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его в конфиг-директории.
func PersistAuthFromResponse(resp *http.Response) error {
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return auth.SaveToken(c.Value)
		}
	}
	return fmt.Errorf("no auth cookie in response")
}

// APIError разбирает конверт ошибки сервера в читаемое сообщение.
func APIError(status int, body []byte) error {
	var env struct {
		Error struct {
			Code    string            `json:"code"`
			Message string            `json:"message"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Code != "" {
		msg := env.Error.Message
		for field, reason := range env.Error.Details {
			msg += fmt.Sprintf("; %s %s", field, reason)
		}
		return fmt.Errorf("%s (%d): %s", env.Error.Code, status, msg)
	}
	return fmt.Errorf("server status %d: %s", status, strings.TrimSpace(string(body)))
}
