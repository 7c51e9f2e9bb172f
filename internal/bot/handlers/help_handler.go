package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/catalog"
)

// NewHelpHandler returns a handler for the /help command. Help is shown to
// everyone, including users without access.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("help", helpHandler{deps}.handle)
}

type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) handle(ctx context.Context, b *bot.Bot, _ *models.Update, s sender) error {
	return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeyHelpText, nil)
}
