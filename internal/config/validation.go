package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
)

// Validate checks struct constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if _, err := c.Sheets.Location(); err != nil {
		return err
	}
	return nil
}

// WebhookURL returns the public webhook address, or "" in polling mode.
func (c *Config) WebhookURL() string {
	if c.Telegram.WebhookHost == "" {
		return ""
	}
	return c.Telegram.WebhookHost + c.Server.WebhookPath
}

// HealthcheckURL returns the public healthcheck address, or "" when the bot
// has no public host.
func (c *Config) HealthcheckURL() string {
	if c.Telegram.WebhookHost == "" {
		return ""
	}
	return c.Telegram.WebhookHost + "/"
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}
