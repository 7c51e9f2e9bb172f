package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stmcap/glossarybot/internal/config"
	"github.com/stmcap/glossarybot/internal/sheets/sheetstest"
)

func testDeps(t *testing.T, host string) (TaskDeps, *sheetstest.Store) {
	t.Helper()
	store := sheetstest.New()
	cfg := &config.Config{}
	cfg.Telegram.WebhookHost = host
	cfg.Sheets.Ranges.Messages = "Сообщения!A2:B100"
	return TaskDeps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:  store,
		Config: cfg,
	}, store
}

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	deps, _ := testDeps(t, "")
	tasks := RegisterAllTasks(deps)
	for name := range config.DefaultTasks {
		if tasks[name] == nil {
			t.Errorf("task %q has no implementation", name)
		}
	}
}

func TestKeepalive(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	deps, _ := testDeps(t, srv.URL)
	deps.HTTPClient = srv.Client()
	task := newKeepaliveTask(deps)

	if err := task(context.Background()); err != nil {
		t.Fatalf("keepalive: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("healthcheck hits = %d, want 1", hits.Load())
	}
}

func TestKeepaliveBadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	deps, _ := testDeps(t, srv.URL)
	deps.HTTPClient = srv.Client()

	if err := newKeepaliveTask(deps)(context.Background()); err == nil {
		t.Fatal("expected error for 503")
	}
}

func TestKeepaliveSkipsInPollingMode(t *testing.T) {
	t.Parallel()

	deps, _ := testDeps(t, "")
	if err := newKeepaliveTask(deps)(context.Background()); err != nil {
		t.Errorf("keepalive: %v", err)
	}
}

func TestSheetsProbe(t *testing.T) {
	t.Parallel()

	deps, store := testDeps(t, "")
	task := newSheetsProbeTask(deps)

	if err := task(context.Background()); err != nil {
		t.Fatalf("probe: %v", err)
	}
	if n := store.Reads("Сообщения!A2:B100"); n != 1 {
		t.Errorf("reads = %d, want 1", n)
	}

	store.FailRead["Сообщения!A2:B100"] = true
	if err := task(context.Background()); !errors.Is(err, sheetstest.ErrInjected) {
		t.Errorf("err = %v, want injected error", err)
	}
}
