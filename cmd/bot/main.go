// Package main contains the entrypoint for the glossary bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	tgbot "github.com/go-telegram/bot"

	"github.com/stmcap/glossarybot/internal/access"
	"github.com/stmcap/glossarybot/internal/bot"
	"github.com/stmcap/glossarybot/internal/bot/handlers"
	"github.com/stmcap/glossarybot/internal/bot/tasks"
	"github.com/stmcap/glossarybot/internal/broadcast"
	"github.com/stmcap/glossarybot/internal/catalog"
	"github.com/stmcap/glossarybot/internal/config"
	"github.com/stmcap/glossarybot/internal/glossary"
	"github.com/stmcap/glossarybot/internal/journal"
	"github.com/stmcap/glossarybot/internal/logger"
	"github.com/stmcap/glossarybot/internal/server"
	"github.com/stmcap/glossarybot/internal/sheets"
	"github.com/stmcap/glossarybot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// spreadsheet, bot, HTTP server, scheduler), handles graceful shutdown, and
// returns an exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	loc, err := cfg.Sheets.Location()
	if err != nil {
		log.Error("Failed to load time zone", "time_zone", cfg.Sheets.TimeZone, "error", err)
		return 1
	}

	svc, err := sheets.NewService(ctx, sheets.ServiceOptions{
		CredentialsFile: cfg.Sheets.CredentialsFile,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
	}, log)
	if err != nil {
		log.Error("Failed to initialize Sheets service", "error", err)
		return 1
	}
	store := sheets.NewStore(svc, cfg.Sheets.SpreadsheetID, log)

	ranges := cfg.Sheets.Ranges
	checker := access.NewChecker(store, ranges.Access, log)
	jr := journal.New(store, journal.Ranges{
		Requests:     ranges.Logs,
		RequestsRead: ranges.LogsRead,
		Broadcasts:   ranges.BroadcastsLogs,
	}, loc, log)

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewFallbackHandler(log)),
		tgbot.WithCheckInitTimeout(cfg.Telegram.RequestTimeout),
	}
	if cfg.Telegram.WebhookSecret != "" {
		botOpts = append(botOpts, tgbot.WithWebhookSecretToken(cfg.Telegram.WebhookSecret))
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	messenger := telegram.NewMessenger(tg)
	engine := broadcast.NewEngine(broadcast.Deps{
		Access:   checker,
		Activity: jr,
		Recorder: jr,
		Sender:   messenger,
		Lookup:   messenger,
		Logger:   log,
	}, cfg.Broadcast.Delay)

	hDeps := handlers.HandlerDeps{
		Logger:    log,
		Config:    cfg,
		Access:    checker,
		Catalog:   catalog.New(store, ranges.Messages, cfg.Messages.Fallback, log),
		Journal:   jr,
		Glossary:  glossary.NewSource(store, ranges.Data),
		Broadcast: engine,
	}
	tDeps := tasks.TaskDeps{
		Logger:     log,
		Store:      store,
		HTTPClient: &http.Client{Timeout: cfg.Telegram.RequestTimeout},
		Config:     cfg,
	}

	if err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllCommands(hDeps)); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	var webhook http.Handler
	if cfg.WebhookURL() != "" {
		webhook = tg.WebhookHandler()
	}
	httpSrv := server.New(cfg.Server, webhook, log)

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, loc, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	app := bot.NewBot(log, cfg, tg, httpSrv, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
