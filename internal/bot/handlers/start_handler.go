package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/catalog"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("start", startHandler{deps}.handle)
}

// startHandler processes the /start command using injected dependencies.
type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) handle(ctx context.Context, b *bot.Bot, _ *models.Update, s sender) error {
	return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeyStartText, nil)
}
