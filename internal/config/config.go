// Package config provides configuration loading, validation, and management
// for the glossary bot. Values come from defaults, config.yaml, and BOT_*
// environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every loading or validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config is the root configuration.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Sheets    SheetsConfig    `mapstructure:"sheets"`
	Server    ServerConfig    `mapstructure:"server"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Commands  []CommandConfig `mapstructure:"commands" validate:"dive"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds Bot API settings.
type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`

	// WebhookHost switches the bot to webhook mode when set, e.g.
	// https://bot.example.com. The webhook path is Server.WebhookPath.
	WebhookHost   string `mapstructure:"webhook_host" validate:"omitempty,url"`
	WebhookSecret string `mapstructure:"webhook_secret"`

	DropPendingUpdates bool          `mapstructure:"drop_pending_updates"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout" validate:"min=1s,max=5m"`
}

// SheetsConfig points at the spreadsheet and its ranges.
type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id" validate:"required"`
	CredentialsFile string `mapstructure:"credentials_file" validate:"required_without=CredentialsJSON"`
	CredentialsJSON string `mapstructure:"credentials_json" validate:"omitempty,json"`
	TimeZone        string `mapstructure:"time_zone" validate:"timezone"`

	Ranges RangesConfig `mapstructure:"ranges"`
}

// RangesConfig names the A1 ranges of every table.
type RangesConfig struct {
	Data           string `mapstructure:"data" validate:"required"`
	Access         string `mapstructure:"access" validate:"required"`
	Messages       string `mapstructure:"messages" validate:"required"`
	Logs           string `mapstructure:"logs" validate:"required"`
	LogsRead       string `mapstructure:"logs_read" validate:"required"`
	BroadcastsLogs string `mapstructure:"broadcast_logs" validate:"required"`
}

// ServerConfig configures the HTTP listener for the webhook and healthcheck.
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	WebhookPath string `mapstructure:"webhook_path" validate:"startswith=/"`
}

// BroadcastConfig configures fan-out throttling.
type BroadcastConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"min=10ms,max=10s"`
}

// SchedulerConfig lists periodic tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig configures one scheduled task.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds texts not kept in the spreadsheet catalog, and
// defaults for optional catalog keys.
type MessagesConfig struct {
	Fallback         string `mapstructure:"fallback" validate:"required"`
	BackButton       string `mapstructure:"back_button" validate:"required"`
	NoRecipients     string `mapstructure:"no_recipients" validate:"required"`
	BroadcastStarted string `mapstructure:"broadcast_started" validate:"required"`
	BroadcastDone    string `mapstructure:"broadcast_done" validate:"required"`
}

// CommandConfig describes one entry of the bot command menu.
type CommandConfig struct {
	Command     string `mapstructure:"command" validate:"required"`
	Description string `mapstructure:"description" validate:"required"`
}

// Location returns the configured time zone for log timestamps.
func (c SheetsConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.TimeZone)
}
