package handlers

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/google/go-cmp/cmp"

	"github.com/stmcap/glossarybot/internal/glossary"
	"github.com/stmcap/glossarybot/internal/sheets/sheetstest"
)

func TestCommandParsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text     string
		wantName string
		wantArgs string
	}{
		{text: "/start", wantName: "start"},
		{text: "/start@glossary_bot", wantName: "start"},
		{text: "/send_all hello world", wantName: "send_all", wantArgs: "hello world"},
		{text: "/send_all\nline one\nline two ", wantName: "send_all", wantArgs: "line one\nline two"},
		{text: "/send_all   ", wantName: "send_all"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := commandName(tt.text); got != tt.wantName {
				t.Errorf("commandName() = %q, want %q", got, tt.wantName)
			}
			if got := commandArgs(tt.text); got != tt.wantArgs {
				t.Errorf("commandArgs() = %q, want %q", got, tt.wantArgs)
			}
		})
	}
}

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want bool
	}{
		{text: "/start", want: true},
		{text: "/start@glossary_bot", want: true},
		{text: "/start extra", want: true},
		{text: "/start@glossary_bot extra", want: true},
		{text: "/starting"},
		{text: "/help"},
		{text: "start"},
		{text: ""},
	}
	match := IsCommand("start")
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			update := &models.Update{Message: &models.Message{Text: tt.text}}
			if got := match(update); got != tt.want {
				t.Errorf("IsCommand(start)(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}

	if match(&models.Update{CallbackQuery: &models.CallbackQuery{Data: "/start"}}) {
		t.Error("callback query matched a command")
	}
}

func TestJournalTexts(t *testing.T) {
	t.Parallel()

	var deps HandlerDeps
	ctx := context.Background()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "command", got: requestText("/type"), want: "type"},
		{name: "plain", got: requestText("HTTP"), want: "HTTP"},
		{name: "definition", got: deps.actionText(ctx, "def:HTTPS"), want: "https"},
		{name: "group", got: deps.actionText(ctx, "group: Protocols "), want: "Protocols"},
		{name: "back", got: deps.actionText(ctx, "back_to_groups"), want: "back_to_groups"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestJournalTextsResolveHashedPayloads(t *testing.T) {
	t.Parallel()

	const dataRange = "БД!A2:C1000"
	longTerm := "Протокол динамической конфигурации узла версии шесть"
	longGroup := strings.Repeat("Сетевые протоколы ", 4)

	store := sheetstest.New()
	store.Set(dataRange, []string{longTerm, "DHCPv6", longGroup})
	deps := HandlerDeps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Glossary: glossary.NewSource(store, dataRange),
	}
	ctx := context.Background()

	if got, want := deps.actionText(ctx, glossary.DefinitionToken(longTerm)), strings.ToLower(longTerm); got != want {
		t.Errorf("definition = %q, want %q", got, want)
	}
	if got, want := deps.actionText(ctx, glossary.GroupToken(longGroup)), strings.TrimSpace(longGroup); got != want {
		t.Errorf("group = %q, want %q", got, want)
	}

	store.FailRead[dataRange] = true
	token := glossary.DefinitionToken(longTerm)
	if got, want := deps.actionText(ctx, token), strings.TrimPrefix(token, glossary.DefinitionPrefix); got != want {
		t.Errorf("definition on read failure = %q, want %q", got, want)
	}
}

func TestKeyboard(t *testing.T) {
	t.Parallel()

	btn := func(s string) models.InlineKeyboardButton {
		return models.InlineKeyboardButton{Text: s, CallbackData: s}
	}

	tests := []struct {
		name  string
		count int
		want  []int
	}{
		{name: "empty", count: 0, want: nil},
		{name: "one", count: 1, want: []int{1}},
		{name: "even", count: 4, want: []int{2, 2}},
		{name: "odd", count: 5, want: []int{2, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buttons := make([]models.InlineKeyboardButton, 0, tt.count)
			for i := range tt.count {
				buttons = append(buttons, btn(string(rune('a'+i))))
			}
			kb := keyboard(buttons)

			var got []int
			for _, row := range kb.InlineKeyboard {
				got = append(got, len(row))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("row sizes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSenderOf(t *testing.T) {
	t.Parallel()

	cb := &models.Update{CallbackQuery: &models.CallbackQuery{
		From: models.User{ID: 5, Username: "eve"},
		Message: models.MaybeInaccessibleMessage{
			InaccessibleMessage: &models.InaccessibleMessage{Chat: models.Chat{ID: -42}},
		},
	}}
	s, ok := senderOf(cb)
	if !ok {
		t.Fatal("senderOf returned !ok for callback")
	}
	if diff := cmp.Diff(sender{Username: "eve", ID: 5, ChatID: -42}, s); diff != "" {
		t.Errorf("sender mismatch (-want +got):\n%s", diff)
	}

	if _, ok := senderOf(&models.Update{Message: &models.Message{Text: "x"}}); ok {
		t.Error("senderOf returned ok for message without sender")
	}
}
