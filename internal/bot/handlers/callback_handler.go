package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/catalog"
	"github.com/stmcap/glossarybot/internal/glossary"
)

// NewDefinitionCallbackHandler returns a handler for def: buttons.
func NewDefinitionCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("definition_callback", callbackHandler{deps}.definition)
}

// NewGroupCallbackHandler returns a handler for group: buttons.
func NewGroupCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("group_callback", callbackHandler{deps}.group)
}

// NewBackCallbackHandler returns a handler for the back button of an item
// list. It re-renders the group list from scratch.
func NewBackCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return deps.guard("back_callback", callbackHandler{deps}.back)
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) definition(ctx context.Context, b *bot.Bot, update *models.Update, s sender) error {
	payload := strings.TrimPrefix(update.CallbackQuery.Data, glossary.DefinitionPrefix)

	rows, err := h.deps.Glossary.Rows(ctx)
	if err != nil {
		return err
	}

	row, ok := glossary.LookupDefinition(rows, payload)
	if !ok {
		return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeyNotFoundOnCallback, nil)
	}
	return h.deps.sendDefinition(ctx, b, s.ChatID, row)
}

func (h callbackHandler) group(ctx context.Context, b *bot.Bot, update *models.Update, s sender) error {
	payload := strings.TrimPrefix(update.CallbackQuery.Data, glossary.GroupPrefix)

	rows, err := h.deps.Glossary.Rows(ctx)
	if err != nil {
		return err
	}

	items := glossary.ItemsInGroup(rows, glossary.LookupGroup(rows, payload))
	if len(items) == 0 {
		return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeyNotFoundElements, nil)
	}

	buttons := append(termButtons(items), models.InlineKeyboardButton{
		Text:         h.deps.Config.Messages.BackButton,
		CallbackData: glossary.BackToGroups,
	})
	return h.deps.replyKey(ctx, b, s.ChatID, catalog.KeyChooseOption, keyboard(buttons))
}

func (h callbackHandler) back(ctx context.Context, b *bot.Bot, _ *models.Update, s sender) error {
	rows, err := h.deps.Glossary.Rows(ctx)
	if err != nil {
		return err
	}
	return h.deps.sendGroups(ctx, b, s.ChatID, rows)
}
