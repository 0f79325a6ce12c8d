package commands

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

func TestLogin_Run(t *testing.T) {
	withTempConfig(t)
	captureOut(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/v1/auth/login") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-123"})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":1,"email":"alice@example.com"}`))
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	cmd := loginCmd{}
	if err := cmd.Run(context.Background(), cfg, []string{"alice@example.com", "secret"}); err != nil {
		t.Fatalf("login should succeed: %v", err)
	}

	// токен лежит в %CONFIG%/10x-cards/auth_token
	p, err := os.UserConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(p, "10x-cards", "auth_token"))
	if err != nil || string(b) != "tok-123" {
		t.Fatalf("auth token not saved: %v %q", err, b)
	}

	// 401 Unauthorized
	ts401 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer ts401.Close()
	if err := cmd.Run(context.Background(), &config.Config{ServerURL: ts401.URL},
		[]string{"alice@example.com", "bad"}); err == nil {
		t.Fatal("expected error for 401")
	}

	// недостаточно аргументов → ErrUsage
	if err := cmd.Run(context.Background(), cfg, []string{"only-email"}); err != ErrUsage {
		t.Fatalf("expected ErrUsage, got %v", err)
	}
}

func TestRegister_Run(t *testing.T) {
	withTempConfig(t)
	captureOut(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/api/v1/auth/signup") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		http.SetCookie(w, &http.Cookie{Name: "auth_token", Value: "tok-new"})
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":2,"email":"bob@example.com"}`))
	}))
	defer ts.Close()

	cmd := registerCmd{}
	cfg := &config.Config{ServerURL: ts.URL}
	if err := cmd.Run(context.Background(), cfg, []string{"bob@example.com", "secret123"}); err != nil {
		t.Fatalf("register should succeed: %v", err)
	}

	// конфликт email
	tsConflict := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"CONFLICT","message":"email already in use"}}`))
	}))
	defer tsConflict.Close()
	err := cmd.Run(context.Background(), &config.Config{ServerURL: tsConflict.URL},
		[]string{"bob@example.com", "secret123"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("expected conflict error, got %v", err)
	}
}
