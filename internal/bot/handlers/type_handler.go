package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewTypeHandler returns a handler for the /type command, which opens the
// group list.
func NewTypeHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("type", typeHandler{deps}.handle)
}

type typeHandler struct {
	deps HandlerDeps
}

func (h typeHandler) handle(ctx context.Context, b *bot.Bot, _ *models.Update, s sender) error {
	rows, err := h.deps.Glossary.Rows(ctx)
	if err != nil {
		return err
	}
	return h.deps.sendGroups(ctx, b, s.ChatID, rows)
}
