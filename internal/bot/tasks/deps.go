// Package tasks implements scheduled maintenance tasks for the glossary bot.
package tasks

import (
	"log/slog"
	"net/http"

	"github.com/stmcap/glossarybot/internal/config"
	"github.com/stmcap/glossarybot/internal/sheets"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger     *slog.Logger
	Store      sheets.Store
	HTTPClient *http.Client
	Config     *config.Config
}
