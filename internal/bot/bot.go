// Package bot implements lifecycle management and component orchestration
// for the glossary bot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tgbot "github.com/go-telegram/bot"
	"golang.org/x/sync/errgroup"

	"github.com/stmcap/glossarybot/internal/config"
	"github.com/stmcap/glossarybot/internal/server"
	"github.com/stmcap/glossarybot/internal/telegram"
)

const webhookCleanupTimeout = 10 * time.Second

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	cfg       *config.Config
	tgBot     *tgbot.Bot
	server    *server.Server
	scheduler *Scheduler
}

// NewBot creates a new instance of the bot from its already built
// components.
func NewBot(
	logger *slog.Logger,
	cfg *config.Config,
	tgBot *tgbot.Bot,
	srv *server.Server,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		cfg:       cfg,
		tgBot:     tgBot,
		server:    srv,
		scheduler: scheduler,
	}
}

// Run publishes the command menu, then runs the update listener, the HTTP
// server and the scheduler until ctx is cancelled or one of them fails.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	if err := telegram.SetCommands(ctx, b.tgBot, b.cfg.Commands); err != nil {
		b.logger.Warn("Failed to publish bot commands", "error", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	if webhookURL := b.cfg.WebhookURL(); webhookURL != "" {
		if err := b.setWebhook(ctx, webhookURL); err != nil {
			return err
		}
		g.Go(func() error {
			b.logger.Info("Starting Telegram webhook listener...", "url", webhookURL)
			b.tgBot.StartWebhook(gCtx)
			b.logger.Info("Telegram webhook listener stopped.")
			b.deleteWebhook(ctx)
			return b.listenerStopped(gCtx)
		})
	} else {
		b.deleteWebhook(ctx)
		g.Go(func() error {
			b.logger.Info("Starting Telegram polling listener...")
			b.tgBot.Start(gCtx)
			b.logger.Info("Telegram polling listener stopped.")
			return b.listenerStopped(gCtx)
		})
	}

	g.Go(func() error {
		return b.server.Run(gCtx)
	})

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if err := b.scheduler.Start(); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

func (b *Bot) listenerStopped(gCtx context.Context) error {
	if gCtx.Err() == nil {
		b.logger.Warn("Telegram listener stopped unexpectedly without context cancellation.")
		return fmt.Errorf("telegram listener stopped unexpectedly")
	}
	return nil
}

func (b *Bot) setWebhook(ctx context.Context, url string) error {
	_, err := b.tgBot.SetWebhook(ctx, &tgbot.SetWebhookParams{
		URL:                url,
		SecretToken:        b.cfg.Telegram.WebhookSecret,
		DropPendingUpdates: b.cfg.Telegram.DropPendingUpdates,
	})
	if err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	b.logger.Info("Webhook set", "url", url)
	return nil
}

// deleteWebhook removes any registered webhook. It runs on shutdown in
// webhook mode and before polling, which Telegram refuses while a webhook
// is set.
func (b *Bot) deleteWebhook(ctx context.Context) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), webhookCleanupTimeout)
	defer cancel()

	_, err := b.tgBot.DeleteWebhook(cleanupCtx, &tgbot.DeleteWebhookParams{
		DropPendingUpdates: b.cfg.Telegram.DropPendingUpdates,
	})
	if err != nil {
		b.logger.Warn("Failed to delete webhook", "error", err)
		return
	}
	b.logger.Info("Webhook deleted")
}
