package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
)

func TestWatch_Stream(t *testing.T) {
	withToken(t, "tok")
	buf := captureOut(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
			t.Fatalf("expected SSE request, got Accept=%q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, p := range []int{25, 90} {
			fmt.Fprintf(w, "data: {\"type\":\"progress\",\"progress\":%d}\n\n", p)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: {\"type\":\"suggestions_ready\"}\n\n")
		flusher.Flush()
	}))
	defer ts.Close()

	cmd := watchCmd{}
	cfg := &config.Config{ServerURL: ts.URL}
	if err := cmd.Run(context.Background(), cfg, []string{"11111111-1111-1111-1111-111111111111"}); err != nil {
		t.Fatalf("watch should succeed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"progress: 25%", "progress: 90%", "suggestions are ready"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestWatch_PollFallback(t *testing.T) {
	withToken(t, "tok")
	buf := captureOut(t)

	old := pollInterval
	pollInterval = 10 * time.Millisecond
	t.Cleanup(func() { pollInterval = old })

	// стрим рвётся без терминального события, поллинг доводит до failed
	var polls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
			w.Header().Set("Content-Type", "text/event-stream")
			fmt.Fprint(w, "data: {\"type\":\"progress\",\"progress\":10}\n\n")
			return
		}
		n := polls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n < 3 {
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "processing", "progress": 10 * n})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "failed", "progress": 30, "errorMessage": "boom"})
	}))
	defer ts.Close()

	cmd := watchCmd{}
	cfg := &config.Config{ServerURL: ts.URL}
	if err := cmd.Run(context.Background(), cfg, []string{"11111111-1111-1111-1111-111111111111"}); err != nil {
		t.Fatalf("watch should fall back to polling: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "polling every") {
		t.Fatalf("expected fallback notice in output:\n%s", out)
	}
	if !strings.Contains(out, "finished: failed") {
		t.Fatalf("expected terminal status in output:\n%s", out)
	}
}

func TestAccept_Run(t *testing.T) {
	withToken(t, "tok")
	buf := captureOut(t)

	suggestions := []map[string]string{
		{"question": "Q1?", "answer": "A1."},
		{"question": "Q2?", "answer": "A2."},
	}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "processing", "progress": 100, "suggestions": suggestions,
			})
		case strings.HasSuffix(r.URL.Path, "/accept"):
			var req struct {
				Flashcards []map[string]string `json:"flashcards"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			picked := suggestions
			if req.Flashcards != nil {
				picked = req.Flashcards
			}
			out := make([]map[string]string, 0, len(picked))
			for i, s := range picked {
				out = append(out, map[string]string{
					"id":       fmt.Sprintf("card-%d", i),
					"question": s["question"],
					"answer":   s["answer"],
					"source":   "ai",
				})
			}
			_ = json.NewEncoder(w).Encode(out)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer ts.Close()

	cfg := &config.Config{ServerURL: ts.URL}
	cmd := acceptCmd{}

	t.Run("accept all", func(t *testing.T) {
		buf.Reset()
		if err := cmd.Run(context.Background(), cfg, []string{"gen-1"}); err != nil {
			t.Fatalf("accept should succeed: %v", err)
		}
		if !strings.Contains(buf.String(), "Принято карточек: 2") {
			t.Fatalf("expected 2 accepted cards:\n%s", buf.String())
		}
	})

	t.Run("accept subset", func(t *testing.T) {
		buf.Reset()
		if err := cmd.Run(context.Background(), cfg, []string{"gen-1", "2"}); err != nil {
			t.Fatalf("accept subset should succeed: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "Q2?") || strings.Contains(out, "Q1?") {
			t.Fatalf("expected only second card:\n%s", out)
		}
		if !strings.Contains(out, "Принято карточек: 1") {
			t.Fatalf("expected 1 accepted card:\n%s", out)
		}
	})

	t.Run("bad number", func(t *testing.T) {
		if err := cmd.Run(context.Background(), cfg, []string{"gen-1", "9"}); err == nil {
			t.Fatal("expected error for out-of-range number")
		}
	})
}
