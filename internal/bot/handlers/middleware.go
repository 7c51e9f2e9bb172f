// Package handlers contains Telegram bot command, text and callback
// handlers, along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/access"
	"github.com/stmcap/glossarybot/internal/catalog"
)

// Journaled writes a request log row before the wrapped handler runs, so
// denied users are logged too. A failed write drops the update.
func Journaled(deps HandlerDeps) tgbot.Middleware {
	log := deps.Logger.With("middleware", "Journaled")
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			s, ok := senderOf(update)
			if !ok {
				next(ctx, bot, update)
				return
			}

			var err error
			if update.CallbackQuery != nil {
				err = deps.Journal.LogAction(ctx, s.Username, s.ID, deps.actionText(ctx, update.CallbackQuery.Data))
			} else {
				err = deps.Journal.LogRequest(ctx, s.Username, s.ID, requestText(update.Message.Text))
			}
			if err != nil {
				log.ErrorContext(ctx, "Failed to journal update", "error", err, "update_id", update.ID, "user_id", s.ID)
				return
			}

			next(ctx, bot, update)
		}
	}
}

// RequireAccess stops updates from users below the required level and
// answers them with the access_denied message.
func RequireAccess(deps HandlerDeps, required access.Level) tgbot.Middleware {
	log := deps.Logger.With("middleware", "RequireAccess", "required", required)
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			s, ok := senderOf(update)
			if !ok {
				log.WarnContext(ctx, "Dropping update without sender", "update_id", update.ID)
				return
			}

			level, err := deps.Access.Level(ctx, s.Username, s.ID)
			if err != nil {
				log.ErrorContext(ctx, "Failed to resolve access", "error", err, "user_id", s.ID)
				return
			}

			if level < required {
				log.WarnContext(ctx, "Unauthorized access attempt", "user_id", s.ID, "username", s.Username, "level", level)
				if err := deps.replyKey(ctx, bot, s.ChatID, catalog.KeyAccessDenied, nil); err != nil {
					log.ErrorContext(ctx, "Failed to send access denied message", "error", err, "chat_id", s.ChatID)
				}
				return
			}

			next(ctx, bot, update)
		}
	}
}

// AdminOnly lets through only users with admin access.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return RequireAccess(deps, access.Admin)
}

// AnswerCallback answers the callback query once the wrapped handler is done,
// whatever the outcome, so the client stops its spinner.
func AnswerCallback(deps HandlerDeps) tgbot.Middleware {
	log := deps.Logger.With("middleware", "AnswerCallback")
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, bot *tgbot.Bot, update *models.Update) {
			next(ctx, bot, update)

			if update.CallbackQuery == nil {
				return
			}
			_, err := bot.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
				CallbackQueryID: update.CallbackQuery.ID,
			})
			if err != nil {
				log.ErrorContext(ctx, "Failed to answer callback query", "error", err, "callback_id", update.CallbackQuery.ID)
			}
		}
	}
}
