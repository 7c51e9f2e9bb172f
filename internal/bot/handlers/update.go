package handlers

import (
	"context"
	"strings"
	"unicode"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/stmcap/glossarybot/internal/glossary"
)

// sender identifies who triggered an update and where replies go.
type sender struct {
	Username string
	ID       int64
	ChatID   int64
}

func senderOf(update *models.Update) (sender, bool) {
	switch {
	case update == nil:
		return sender{}, false
	case update.Message != nil && update.Message.From != nil:
		m := update.Message
		return sender{Username: m.From.Username, ID: m.From.ID, ChatID: m.Chat.ID}, true
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		s := sender{Username: cq.From.Username, ID: cq.From.ID, ChatID: cq.From.ID}
		switch {
		case cq.Message.Message != nil:
			s.ChatID = cq.Message.Message.Chat.ID
		case cq.Message.InaccessibleMessage != nil:
			s.ChatID = cq.Message.InaccessibleMessage.Chat.ID
		}
		return s, true
	}
	return sender{}, false
}

// IsPlainText matches message text that is not a command.
func IsPlainText(update *models.Update) bool {
	if update.Message == nil {
		return false
	}
	text := update.Message.Text
	return text != "" && !strings.HasPrefix(text, "/")
}

// IsCommand matches messages whose first token is /name, with or without
// an @bot suffix.
func IsCommand(name string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		if update.Message == nil || !strings.HasPrefix(update.Message.Text, "/") {
			return false
		}
		return commandName(update.Message.Text) == name
	}
}

// commandName returns "start" for "/start@glossary_bot args".
func commandName(text string) string {
	name, _ := splitCommand(text)
	name = strings.TrimPrefix(name, "/")
	name, _, _ = strings.Cut(name, "@")
	return name
}

// commandArgs returns everything after the command token, trimmed.
func commandArgs(text string) string {
	_, args := splitCommand(text)
	return args
}

func splitCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i:])
}

// requestText is what the journal records for an inbound message.
func requestText(text string) string {
	if strings.HasPrefix(text, "/") {
		return commandName(text)
	}
	return text
}

// actionText is what the journal records for a button press. Hashed
// payloads are resolved to the term or group they stand for.
func (d HandlerDeps) actionText(ctx context.Context, data string) string {
	if payload, ok := strings.CutPrefix(data, glossary.DefinitionPrefix); ok {
		if !glossary.IsHashed(payload) {
			return strings.ToLower(payload)
		}
		if rows, ok := d.glossaryRows(ctx); ok {
			if row, found := glossary.LookupDefinition(rows, payload); found {
				return strings.ToLower(row.Term)
			}
		}
		return payload
	}
	if payload, ok := strings.CutPrefix(data, glossary.GroupPrefix); ok {
		if !glossary.IsHashed(payload) {
			return strings.TrimSpace(payload)
		}
		if rows, ok := d.glossaryRows(ctx); ok {
			return glossary.LookupGroup(rows, payload)
		}
		return payload
	}
	return data
}

func (d HandlerDeps) glossaryRows(ctx context.Context) ([]glossary.Row, bool) {
	if d.Glossary == nil {
		return nil, false
	}
	rows, err := d.Glossary.Rows(ctx)
	if err != nil {
		d.Logger.WarnContext(ctx, "Failed to read glossary for journal entry", "error", err)
		return nil, false
	}
	return rows, true
}
