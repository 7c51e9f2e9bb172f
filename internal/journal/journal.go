// Package journal appends request and broadcast records to the spreadsheet
// logs and derives the set of active users from them.
package journal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/stmcap/glossarybot/internal/sheets"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"

	// MaxExcerpt is the number of characters of a broadcast kept in its log row.
	MaxExcerpt = 100
)

// Ranges names the spreadsheet ranges used by the journal.
type Ranges struct {
	Requests     string // append target for request rows
	RequestsRead string // full range read back for active users
	Broadcasts   string // append target for broadcast rows
}

// Journal writes log rows. It is safe for concurrent use.
type Journal struct {
	store  sheets.Store
	ranges Ranges
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// New creates a Journal writing timestamps in loc (UTC when nil).
func New(store sheets.Store, ranges Ranges, loc *time.Location, logger *slog.Logger, opts ...Option) *Journal {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	j := &Journal{
		store:  store,
		ranges: ranges,
		loc:    loc,
		now:    time.Now,
		logger: logger.With("component", "journal"),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// LogRequest records an inbound message or command.
func (j *Journal) LogRequest(ctx context.Context, username string, telegramID int64, text string) error {
	return j.appendEntry(ctx, username, telegramID, text)
}

// LogAction records a button press.
func (j *Journal) LogAction(ctx context.Context, username string, telegramID int64, action string) error {
	return j.appendEntry(ctx, username, telegramID, action)
}

func (j *Journal) appendEntry(ctx context.Context, username string, telegramID int64, text string) error {
	date, clock := j.stamp()
	row := []string{date, clock, username, strconv.FormatInt(telegramID, 10), text}
	if err := j.store.AppendRow(ctx, j.ranges.Requests, row); err != nil {
		return fmt.Errorf("failed to log request: %w", err)
	}
	j.logger.DebugContext(ctx, "Request logged", "username", username, "user_id", telegramID)
	return nil
}

// LogBroadcast records a finished broadcast with an excerpt of its text.
func (j *Journal) LogBroadcast(ctx context.Context, adminID int64, text string, sent int) error {
	date, clock := j.stamp()
	row := []string{date, clock, strconv.FormatInt(adminID, 10), Excerpt(text), strconv.Itoa(sent)}
	if err := j.store.AppendRow(ctx, j.ranges.Broadcasts, row); err != nil {
		return fmt.Errorf("failed to log broadcast: %w", err)
	}
	j.logger.InfoContext(ctx, "Broadcast logged", "admin_id", adminID, "sent", sent)
	return nil
}

// ActiveUsers returns the telegram ids found in the id column of the request
// log. Non-numeric cells are skipped.
func (j *Journal) ActiveUsers(ctx context.Context) (map[int64]struct{}, error) {
	rows, err := j.store.ReadRange(ctx, j.ranges.RequestsRead)
	if err != nil {
		return nil, fmt.Errorf("failed to read request log: %w", err)
	}

	active := make(map[int64]struct{})
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		id, ok := parseID(row[3])
		if !ok {
			continue
		}
		active[id] = struct{}{}
	}
	return active, nil
}

func parseID(cell string) (int64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Excerpt returns at most MaxExcerpt characters of text.
func Excerpt(text string) string {
	if utf8.RuneCountInString(text) <= MaxExcerpt {
		return text
	}
	return string([]rune(text)[:MaxExcerpt])
}

func (j *Journal) stamp() (string, string) {
	t := j.now().In(j.loc)
	return t.Format(dateLayout), t.Format(timeLayout)
}
