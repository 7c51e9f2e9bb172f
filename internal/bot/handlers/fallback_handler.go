package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewFallbackHandler returns the default handler for updates no other
// handler matches, such as unknown commands or stickers. They are ignored.
func NewFallbackHandler(logger *slog.Logger) bot.HandlerFunc {
	log := logger.With("handler", "fallback")
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		log.DebugContext(ctx, "Ignoring unhandled update", "update_id", update.ID)
	}
}
