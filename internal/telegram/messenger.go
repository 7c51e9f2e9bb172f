package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Messenger adapts a bot client to the outbound interfaces of the
// broadcast engine.
type Messenger struct {
	b *bot.Bot
}

// NewMessenger creates a Messenger over b.
func NewMessenger(b *bot.Bot) *Messenger {
	return &Messenger{b: b}
}

// Send delivers an HTML formatted message to chatID.
func (m *Messenger) Send(ctx context.Context, chatID int64, text string) error {
	_, err := m.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to %d: %w", chatID, err)
	}
	return nil
}

// LookupChat returns the username currently attached to chatID, which may be
// empty.
func (m *Messenger) LookupChat(ctx context.Context, chatID int64) (string, error) {
	chat, err := m.b.GetChat(ctx, &bot.GetChatParams{ChatID: chatID})
	if err != nil {
		return "", fmt.Errorf("failed to get chat %d: %w", chatID, err)
	}
	return chat.Username, nil
}
