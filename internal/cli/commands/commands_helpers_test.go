package commands

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/WPrzybyszewski/10-X-Cards/internal/cli/auth"
)

// withTempConfig переопределяет пользовательские каталоги на время теста,
// чтобы токен сохранялся в temp.
func withTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if runtime.GOOS == "windows" {
		t.Setenv("APPDATA", dir)
	} else {
		t.Setenv("XDG_CONFIG_HOME", dir)
	}
	return dir
}

// withToken сохраняет токен в temp-конфиге, имитируя выполненный login.
func withToken(t *testing.T, token string) {
	t.Helper()
	withTempConfig(t)
	if err := auth.SaveToken(token); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}
}

// captureOut подменяет Out на буфер до конца теста.
func captureOut(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := Out
	buf := &bytes.Buffer{}
	Out = buf
	t.Cleanup(func() { Out = old })
	return buf
}
