// Package ledger applies contributions to groups and memberships and keeps
// their running totals consistent.
//
// Every write runs inside one store transaction, so a contribution and the
// totals it affects are committed together or not at all. Writes to the same
// group are serialized in-process by a per-group lock; across processes the
// conditional writes of the store detect lost updates, and the whole
// operation is retried a bounded number of times.
package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage"
)

// DefaultAttempts is how many times an operation is tried when it keeps
// hitting concurrent updates.
const DefaultAttempts = 5

// Engine is the write path for contributions and the source of group,
// admin and user statistics.
type Engine struct {
	store    storage.Store
	locks    *keyedMutex
	attempts int
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAttempts sets the number of attempts for operations that hit a
// concurrency conflict. Values below 1 are ignored.
func WithAttempts(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.attempts = n
		}
	}
}

// WithMetrics records ledger activity in m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine on top of store.
func New(store storage.Store, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		locks:    newKeyedMutex(),
		attempts: DefaultAttempts,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// retry runs fn until it succeeds, fails with something other than a
// concurrency conflict, or runs out of attempts. fn must redo the whole
// operation from the start.
func (e *Engine) retry(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err = fn()
		if !errors.Is(err, models.ErrConcurrencyConflict) {
			return err
		}
		e.metrics.incRetry(op)
		e.logger.Warn("Ledger write conflict, retrying",
			"operation", op,
			"attempt", attempt,
			"max_attempts", e.attempts,
		)
	}
	return err
}
