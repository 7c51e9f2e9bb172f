package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// legacyEnv maps config keys to the environment variable names used by
// earlier deployments, checked after the BOT_* names.
var legacyEnv = map[string]string{
	"telegram.token":          "TOKEN",
	"telegram.webhook_host":   "WEBHOOK_HOST",
	"sheets.spreadsheet_id":   "SPREADSHEET_ID",
	"sheets.credentials_json": "GOOGLE_CREDENTIALS_JSON",
	"server.port":             "PORT",
}

// LoadConfig loads and validates configuration from:
// 1. Default values
// 2. the YAML file at path (optional; a missing file is not an error)
// 3. BOT_* environment variables, then legacy variable names
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envKey := "BOT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, legacy, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isNotExist(err) {
				return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
			}
			slog.Info("Configuration file not found, using defaults and environment", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

// setDefaults sets default values for every key so that environment
// variables can override any of them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.webhook_host", "")
	v.SetDefault("telegram.webhook_secret", "")
	v.SetDefault("telegram.drop_pending_updates", false)
	v.SetDefault("telegram.request_timeout", DefaultTelegramRequestTimeout)

	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.credentials_json", "")
	v.SetDefault("sheets.time_zone", DefaultTimeZone)
	v.SetDefault("sheets.ranges.data", DefaultDataRange)
	v.SetDefault("sheets.ranges.access", DefaultAccessRange)
	v.SetDefault("sheets.ranges.messages", DefaultMessagesRange)
	v.SetDefault("sheets.ranges.logs", DefaultLogsRange)
	v.SetDefault("sheets.ranges.logs_read", DefaultLogsReadRange)
	v.SetDefault("sheets.ranges.broadcast_logs", DefaultBroadcastRange)

	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.webhook_path", DefaultWebhookPath)

	v.SetDefault("broadcast.delay", DefaultBroadcastDelay)

	for name, task := range DefaultTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}

	v.SetDefault("messages.fallback", DefaultMessages.Fallback)
	v.SetDefault("messages.back_button", DefaultMessages.BackButton)
	v.SetDefault("messages.no_recipients", DefaultMessages.NoRecipients)
	v.SetDefault("messages.broadcast_started", DefaultMessages.BroadcastStarted)
	v.SetDefault("messages.broadcast_done", DefaultMessages.BroadcastDone)

	commands := make([]map[string]string, 0, len(DefaultCommands))
	for _, c := range DefaultCommands {
		commands = append(commands, map[string]string{"command": c.Command, "description": c.Description})
	}
	v.SetDefault("commands", commands)
}
