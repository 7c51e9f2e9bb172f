// Package broadcast sends an admin message to every active user that the
// access list still admits.
package broadcast

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/stmcap/glossarybot/internal/access"
)

// DefaultDelay is the minimum spacing between two deliveries.
const DefaultDelay = 100 * time.Millisecond

// Sender delivers a formatted message to one chat.
type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// ChatLookup resolves a chat id to the username currently attached to it.
type ChatLookup interface {
	LookupChat(ctx context.Context, chatID int64) (string, error)
}

// AccessSource lists the granting rows of the access list.
type AccessSource interface {
	Entries(ctx context.Context) ([]access.Entry, error)
}

// ActivitySource lists the ids of users that ever talked to the bot.
type ActivitySource interface {
	ActiveUsers(ctx context.Context) (map[int64]struct{}, error)
}

// Recorder stores the outcome of a broadcast.
type Recorder interface {
	LogBroadcast(ctx context.Context, adminID int64, text string, sent int) error
}

// Recipient is one member of the audience.
type Recipient struct {
	TelegramID int64
	Username   string
}

// Result counts delivered messages out of the audience size.
type Result struct {
	Sent  int
	Total int
}

func (r Result) String() string {
	return fmt.Sprintf("%d/%d", r.Sent, r.Total)
}

// Deps bundles the collaborators of an Engine.
type Deps struct {
	Access   AccessSource
	Activity ActivitySource
	Recorder Recorder
	Sender   Sender
	Lookup   ChatLookup
	Logger   *slog.Logger
}

// Engine computes audiences and fans messages out to them.
type Engine struct {
	deps    Deps
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimiter replaces the delivery throttle.
func WithLimiter(l *rate.Limiter) Option {
	return func(e *Engine) { e.limiter = l }
}

// NewEngine creates an Engine that spaces deliveries by delay.
func NewEngine(deps Deps, delay time.Duration, opts ...Option) *Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	e := &Engine{
		deps:    deps,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		logger:  logger.With("component", "broadcast"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Audience returns the access-granted active users, in access list order,
// without duplicate ids.
func (e *Engine) Audience(ctx context.Context) ([]Recipient, error) {
	active, err := e.deps.Activity.ActiveUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active users: %w", err)
	}
	entries, err := e.deps.Access.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load access list: %w", err)
	}

	activeIDs := make([]int64, 0, len(active))
	for id := range active {
		activeIDs = append(activeIDs, id)
	}
	slices.Sort(activeIDs)

	var recipients []Recipient
	seen := make(map[int64]struct{})
	add := func(r Recipient) {
		if _, dup := seen[r.TelegramID]; dup {
			return
		}
		seen[r.TelegramID] = struct{}{}
		recipients = append(recipients, r)
	}

	for _, entry := range entries {
		if entry.HasTelegramID() {
			id, ok := entry.NumericID()
			if !ok {
				e.logger.WarnContext(ctx, "Skipping access entry with malformed telegram id", "telegram_id", entry.TelegramID, "username", entry.Username)
				continue
			}
			if _, isActive := active[id]; isActive {
				add(Recipient{TelegramID: id, Username: entry.Username})
			}
			continue
		}
		if !entry.HasUsername() {
			continue
		}
		if id, ok := e.probe(ctx, activeIDs, entry.Username); ok {
			add(Recipient{TelegramID: id, Username: entry.Username})
		}
	}

	return recipients, nil
}

// probe walks the active ids until one resolves to username. Lookup errors
// count as a mismatch.
func (e *Engine) probe(ctx context.Context, ids []int64, username string) (int64, bool) {
	for _, id := range ids {
		name, err := e.deps.Lookup.LookupChat(ctx, id)
		if err != nil {
			e.logger.DebugContext(ctx, "Chat lookup failed, skipping id", "chat_id", id, "error", err)
			continue
		}
		if name != "" && strings.EqualFold(name, username) {
			return id, true
		}
	}
	return 0, false
}

// Deliver sends text to each recipient in turn. Failures are logged and
// skipped. Cancelling ctx does not stop a delivery in progress.
func (e *Engine) Deliver(ctx context.Context, recipients []Recipient, text string) Result {
	ctx = context.WithoutCancel(ctx)
	res := Result{Total: len(recipients)}

	for _, r := range recipients {
		if err := e.limiter.Wait(ctx); err != nil {
			e.logger.WarnContext(ctx, "Throttle wait failed", "error", err)
		}
		if err := e.deps.Sender.Send(ctx, r.TelegramID, text); err != nil {
			e.logger.ErrorContext(ctx, "Failed to deliver broadcast", "chat_id", r.TelegramID, "username", r.Username, "error", err)
			continue
		}
		res.Sent++
	}
	return res
}

// Record appends the broadcast log row.
func (e *Engine) Record(ctx context.Context, adminID int64, text string, res Result) error {
	if err := e.deps.Recorder.LogBroadcast(ctx, adminID, text, res.Sent); err != nil {
		return fmt.Errorf("failed to record broadcast: %w", err)
	}
	return nil
}

// Hooks let the caller report progress back to the admin. Nil hooks are skipped.
type Hooks struct {
	OnStart func(ctx context.Context, total int)
	OnDone  func(ctx context.Context, res Result)
}

// Broadcast computes the audience, delivers text to it, reports through
// hooks and records the outcome. An empty audience sends and records nothing.
func (e *Engine) Broadcast(ctx context.Context, adminID int64, text string, hooks Hooks) (Result, error) {
	runID := uuid.NewString()
	log := e.logger.With("broadcast_id", runID, "admin_id", adminID)

	recipients, err := e.Audience(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to compute audience", "error", err)
		return Result{}, err
	}
	if len(recipients) == 0 {
		log.InfoContext(ctx, "Broadcast has no audience")
		return Result{}, nil
	}

	if hooks.OnStart != nil {
		hooks.OnStart(ctx, len(recipients))
	}

	start := time.Now()
	log.InfoContext(ctx, "Starting broadcast", "recipients", len(recipients))
	res := e.Deliver(ctx, recipients, text)
	log.InfoContext(ctx, "Broadcast finished", "sent", res.Sent, "total", res.Total, "duration", time.Since(start))

	if hooks.OnDone != nil {
		hooks.OnDone(ctx, res)
	}

	if err := e.Record(context.WithoutCancel(ctx), adminID, text, res); err != nil {
		log.ErrorContext(ctx, "Failed to record broadcast", "error", err)
		return res, err
	}
	return res, nil
}
