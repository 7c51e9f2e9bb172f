package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/catalog"
	"github.com/stmcap/glossarybot/internal/glossary"
)

// NewQueryHandler returns a handler that looks plain text up in the glossary.
func NewQueryHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("query", queryHandler{deps}.handle)
}

type queryHandler struct {
	deps HandlerDeps
}

func (h queryHandler) handle(ctx context.Context, b *bot.Bot, update *models.Update, s sender) error {
	rows, err := h.deps.Glossary.Rows(ctx)
	if err != nil {
		return err
	}

	res := glossary.Resolve(update.Message.Text, rows)
	h.deps.Logger.DebugContext(ctx, "Query resolved", "handler", "query", "kind", res.Kind, "candidates", len(res.Candidates))

	switch res.Kind {
	case glossary.ExactMatch:
		return h.deps.sendDefinition(ctx, b, s.ChatID, res.Row)
	case glossary.Candidates:
		return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeyChooseOption, keyboard(termButtons(res.Candidates)))
	default:
		return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeyNoMatch, nil)
	}
}
