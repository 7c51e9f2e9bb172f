package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, "warn", true)
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("output = %q", out)
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := newLogger(&buf, "info", true)

	called := false
	h := Middleware(log)(func(ctx context.Context, b *bot.Bot, update *models.Update) {
		called = true
	})
	h(context.Background(), nil, &models.Update{
		ID: 7,
		CallbackQuery: &models.CallbackQuery{
			ID:   "cb",
			From: models.User{ID: 111, Username: "alice"},
			Data: "def:HTTP",
		},
	})

	if !called {
		t.Fatal("next handler not called")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2: %q", len(lines), buf.String())
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatal(err)
	}
	if first["update_type"] != "callback_query" || first["data"] != "def:HTTP" || first["username"] != "alice" {
		t.Errorf("first line = %v", first)
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := truncate("короткий", 50); got != "короткий" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate("абвгдеёжзи", 6); got != "абв..." {
		t.Errorf("truncate(long) = %q", got)
	}
	if got := truncate("abcdef", 2); got != "..." {
		t.Errorf("truncate(tiny) = %q", got)
	}
}
