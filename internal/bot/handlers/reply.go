package handlers

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/catalog"
	"github.com/stmcap/glossarybot/internal/glossary"
)

const buttonsPerRow = 2

// handleFunc is a handler body whose errors are logged by guard.
type handleFunc func(ctx context.Context, b *bot.Bot, update *models.Update, s sender) error

// guard adapts a handleFunc to the library signature. It resolves the
// sender and logs any error; the update then counts as failed.
func (d HandlerDeps) guard(name string, fn handleFunc) bot.HandlerFunc {
	log := d.Logger.With("handler", name)
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		s, ok := senderOf(update)
		if !ok {
			log.WarnContext(ctx, "Handler received update without sender", "update_id", update.ID)
			return
		}
		log.InfoContext(ctx, "Handling update", "chat_id", s.ChatID, "user_id", s.ID)

		if err := fn(ctx, b, update, s); err != nil {
			log.ErrorContext(ctx, "Handler failed", "error", err, "update_id", update.ID, "chat_id", s.ChatID)
		}
	}
}

// send posts an HTML message with an optional inline keyboard.
func (d HandlerDeps) send(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) error {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// sendPlain posts a message without formatting.
func (d HandlerDeps) sendPlain(ctx context.Context, b *bot.Bot, chatID int64, text string) error {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// replyKey sends the catalog message stored under key.
func (d HandlerDeps) replyKey(ctx context.Context, b *bot.Bot, chatID int64, key string, kb *models.InlineKeyboardMarkup) error {
	text, err := d.Catalog.Message(ctx, key)
	if err != nil {
		return err
	}
	return d.send(ctx, b, chatID, text, kb)
}

// sendDefinition renders a resolved term.
func (d HandlerDeps) sendDefinition(ctx context.Context, b *bot.Bot, chatID int64, row glossary.Row) error {
	header, err := d.Catalog.Message(ctx, catalog.KeyExactMatchFound)
	if err != nil {
		return err
	}
	return d.send(ctx, b, chatID, header+" \n"+row.Definition, nil)
}

// sendGroups renders the group list, or not_found_types when there is none.
func (d HandlerDeps) sendGroups(ctx context.Context, b *bot.Bot, chatID int64, rows []glossary.Row) error {
	groups := glossary.ListGroups(rows)
	if len(groups) == 0 {
		return d.replyKey(ctx, b, chatID, catalog.KeyNotFoundTypes, nil)
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(groups))
	for _, g := range groups {
		buttons = append(buttons, models.InlineKeyboardButton{Text: g, CallbackData: glossary.GroupToken(g)})
	}
	return d.replyKey(ctx, b, chatID, catalog.KeyChooseOption, keyboard(buttons))
}

func termButtons(rows []glossary.Row) []models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, 0, len(rows)+1)
	for _, r := range rows {
		buttons = append(buttons, models.InlineKeyboardButton{Text: r.Term, CallbackData: glossary.DefinitionToken(r.Term)})
	}
	return buttons
}

// keyboard lays buttons out buttonsPerRow to a row.
func keyboard(buttons []models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, (len(buttons)+buttonsPerRow-1)/buttonsPerRow)
	for len(buttons) > 0 {
		n := min(buttonsPerRow, len(buttons))
		rows = append(rows, buttons[:n:n])
		buttons = buttons[n:]
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
