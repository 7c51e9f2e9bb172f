package handlers

import (
	"log/slog"

	"github.com/stmcap/glossarybot/internal/access"
	"github.com/stmcap/glossarybot/internal/broadcast"
	"github.com/stmcap/glossarybot/internal/catalog"
	"github.com/stmcap/glossarybot/internal/config"
	"github.com/stmcap/glossarybot/internal/glossary"
	"github.com/stmcap/glossarybot/internal/journal"
)

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Access    *access.Checker
	Catalog   *catalog.Catalog
	Journal   *journal.Journal
	Glossary  *glossary.Source
	Broadcast *broadcast.Engine
}
