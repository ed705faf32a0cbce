// Package usecase holds one orchestration unit per application operation.
//
// Each use case is built once with its repositories and exposes Execute.
// Errors from repositories pass through unchanged; the only error a use case
// creates itself is the title ValidationError of SaveNote.
package usecase

import (
	"log/slog"
	"time"
)

type config struct {
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a use case.
type Option func(*config)

// WithClock replaces time.Now for stamping records.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(opts []Option) config {
	c := config{now: time.Now}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}
