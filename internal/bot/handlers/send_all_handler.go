package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/broadcast"
	"github.com/stmcap/glossarybot/internal/catalog"
)

// NewSendAllHandler returns a handler for /send_all, which broadcasts the
// rest of the message to every active user with access.
func NewSendAllHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("send_all", sendAllHandler{deps}.handle)
}

type sendAllHandler struct {
	deps HandlerDeps
}

func (h sendAllHandler) handle(ctx context.Context, b *bot.Bot, update *models.Update, s sender) error {
	log := h.deps.Logger.With("handler", "send_all")

	text := commandArgs(update.Message.Text)
	if text == "" {
		return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeySendAllInfo, nil)
	}

	msgs := h.deps.Config.Messages
	hooks := broadcast.Hooks{
		OnStart: func(ctx context.Context, total int) {
			if err := h.deps.sendPlain(ctx, b, s.ChatID, fmt.Sprintf(msgs.BroadcastStarted, total)); err != nil {
				log.ErrorContext(ctx, "Failed to report broadcast start", "error", err)
			}
		},
		OnDone: func(ctx context.Context, res broadcast.Result) {
			if err := h.deps.sendPlain(ctx, b, s.ChatID, fmt.Sprintf(msgs.BroadcastDone, res.Sent, res.Total)); err != nil {
				log.ErrorContext(ctx, "Failed to report broadcast result", "error", err)
			}
		},
	}

	res, err := h.deps.Broadcast.Broadcast(ctx, s.ID, text, hooks)
	if err != nil {
		return err
	}
	if res.Total == 0 {
		msg, err := h.deps.Catalog.MessageOr(ctx, catalog.KeySendAllNoRecipients, msgs.NoRecipients)
		if err != nil {
			return err
		}
		return h.deps.sendPlain(ctx, b, s.ChatID, msg)
	}

	log.InfoContext(ctx, "Broadcast completed", "admin_id", s.ID, "result", res.String())
	return nil
}
