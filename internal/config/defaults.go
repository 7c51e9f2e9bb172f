package config

import "time"

// Default values for configuration.
const (
	DefaultLogLevel = "info"

	DefaultTelegramRequestTimeout = 30 * time.Second

	DefaultTimeZone       = "Europe/Moscow"
	DefaultDataRange      = "БД!A2:C1000"
	DefaultAccessRange    = "Доступ!A2:C1000"
	DefaultMessagesRange  = "Сообщения!A2:B100"
	DefaultLogsRange      = "Логи!A2"
	DefaultLogsReadRange  = "Логи!A2:E10000"
	DefaultBroadcastRange = "Рассылки!A2"

	DefaultServerHost  = "0.0.0.0"
	DefaultServerPort  = 8000
	DefaultWebhookPath = "/webhook"

	DefaultBroadcastDelay = 100 * time.Millisecond
)

// DefaultMessages are used when the catalog does not carry a key.
var DefaultMessages = MessagesConfig{
	Fallback:         "⚠️ Упс... Что-то пошло не так. Попробуй снова или обратись к администратору.",
	BackButton:       "⬅️ Назад",
	NoRecipients:     "🔍 Нет активных пользователей для рассылки",
	BroadcastStarted: "⏳ Рассылка для %d пользователей...",
	BroadcastDone:    "✅ Успешно отправлено: %d/%d",
}

// DefaultCommands populate the bot command menu.
var DefaultCommands = []CommandConfig{
	{Command: "start", Description: "Начать работу с ботом"},
	{Command: "type", Description: "Показать термины по группам"},
	{Command: "help", Description: "Справка"},
}

// DefaultTasks are registered but disabled until configured.
var DefaultTasks = map[string]TaskConfig{
	"keepalive":    {Enabled: false, Schedule: "*/10 * * * *"},
	"sheets_probe": {Enabled: false, Schedule: "0 */1 * * *"},
}
