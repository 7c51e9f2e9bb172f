// Package access classifies Telegram users against the access list kept in
// the spreadsheet.
package access

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/stmcap/glossarybot/internal/sheets"
)

// Level is the access granted to a user.
type Level int

const (
	Denied Level = iota
	User
	Admin
)

func (l Level) String() string {
	switch l {
	case User:
		return "user"
	case Admin:
		return "admin"
	default:
		return "denied"
	}
}

// ParseLevel maps a sheet cell to a Level. Only "yes"/"user" and "admin"
// grant anything.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "user":
		return User
	case "admin":
		return Admin
	default:
		return Denied
	}
}

// Entry is one row of the access list. Username is lowercased; either
// identity field may be empty.
type Entry struct {
	Username   string
	TelegramID string
	Level      Level
}

// HasUsername reports whether the row names a username.
func (e Entry) HasUsername() bool { return e.Username != "" }

// HasTelegramID reports whether the row names a telegram id.
func (e Entry) HasTelegramID() bool { return e.TelegramID != "" }

// NumericID returns the telegram id as a number. ok is false when the row
// has no id or the cell is not a valid integer.
func (e Entry) NumericID() (id int64, ok bool) {
	if !e.HasTelegramID() {
		return 0, false
	}
	id, err := strconv.ParseInt(e.TelegramID, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ParseEntries converts raw rows into granting entries, keeping table order.
// Rows with fewer than three cells and rows that grant nothing are dropped.
func ParseEntries(rows [][]string) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		level := ParseLevel(row[2])
		if level == Denied {
			continue
		}
		entries = append(entries, Entry{
			Username:   strings.ToLower(strings.TrimSpace(row[0])),
			TelegramID: strings.TrimSpace(row[1]),
			Level:      level,
		})
	}
	return entries
}

// Resolve returns the level of the first entry matching the username or the
// telegram id, or Denied.
func Resolve(entries []Entry, username string, telegramID int64) Level {
	name := strings.ToLower(strings.TrimSpace(username))
	id := strconv.FormatInt(telegramID, 10)

	for _, e := range entries {
		if e.HasUsername() && e.Username == name {
			return e.Level
		}
		if e.HasTelegramID() && e.TelegramID == id {
			return e.Level
		}
	}
	return Denied
}

// Checker resolves access against the live access list. Every call re-reads
// the whole range.
type Checker struct {
	store  sheets.Store
	rng    string
	logger *slog.Logger
}

// NewChecker creates a Checker reading the access list from rng.
func NewChecker(store sheets.Store, rng string, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checker{store: store, rng: rng, logger: logger.With("component", "access")}
}

// Entries returns the granting rows of the access list.
func (c *Checker) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := c.store.ReadRange(ctx, c.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to read access list: %w", err)
	}
	return ParseEntries(rows), nil
}

// Level returns the access level of the user.
func (c *Checker) Level(ctx context.Context, username string, telegramID int64) (Level, error) {
	entries, err := c.Entries(ctx)
	if err != nil {
		return Denied, err
	}
	level := Resolve(entries, username, telegramID)
	c.logger.DebugContext(ctx, "Access resolved", "username", username, "user_id", telegramID, "level", level)
	return level, nil
}
