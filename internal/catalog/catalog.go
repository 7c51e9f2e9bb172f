// Package catalog looks up user-facing message templates kept in the
// spreadsheet.
package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/stmcap/glossarybot/internal/sheets"
)

// DefaultFallback is shown when a key is missing from the catalog.
const DefaultFallback = "⚠️ Упс... Что-то пошло не так. Попробуй снова или обратись к администратору."

// Keys used by the handlers.
const (
	KeyAccessDenied        = "access_denied"
	KeyStartText           = "start_text"
	KeyHelpText            = "help_text"
	KeyExactMatchFound     = "exact_match_found"
	KeyChooseOption        = "choose_option"
	KeyNoMatch             = "no_match"
	KeyNotFoundOnCallback  = "not_found_on_callback"
	KeyNotFoundTypes       = "not_found_types"
	KeyNotFoundElements    = "not_found_elements"
	KeySendAllInfo         = "send_all_info"
	KeySendAllNoRecipients = "send_all_no_recipients"
)

// Catalog resolves message keys against a two-column range (key, template).
type Catalog struct {
	store    sheets.Store
	rng      string
	fallback string
	logger   *slog.Logger
}

// New creates a Catalog. An empty fallback selects DefaultFallback.
func New(store sheets.Store, rng, fallback string, logger *slog.Logger) *Catalog {
	if fallback == "" {
		fallback = DefaultFallback
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{store: store, rng: rng, fallback: fallback, logger: logger.With("component", "catalog")}
}

// Lookup returns the template for key. Keys compare case-insensitively after
// trimming; the first matching row with a non-blank template wins.
func (c *Catalog) Lookup(ctx context.Context, key string) (string, bool, error) {
	rows, err := c.store.ReadRange(ctx, c.rng)
	if err != nil {
		return "", false, fmt.Errorf("failed to read message catalog: %w", err)
	}

	want := strings.ToLower(strings.TrimSpace(key))
	for _, row := range rows {
		if len(row) == 0 || strings.ToLower(strings.TrimSpace(row[0])) != want {
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		return row[1], true, nil
	}
	return "", false, nil
}

// Message returns the template for key, or the fallback when it is absent.
func (c *Catalog) Message(ctx context.Context, key string) (string, error) {
	return c.MessageOr(ctx, key, c.fallback)
}

// MessageOr returns the template for key, or def when it is absent.
func (c *Catalog) MessageOr(ctx context.Context, key, def string) (string, error) {
	msg, ok, err := c.Lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if !ok {
		c.logger.WarnContext(ctx, "Message key missing from catalog", "key", key)
		return def, nil
	}
	return msg, nil
}
