// Package lifecycle exposes store change notifications as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
)

// Watcher is implemented by stores that report external changes.
type Watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// StoreChanged tells consumers that the store changed and is worth re-fetching.
type StoreChanged struct {
	At time.Time
}

func (e StoreChanged) String() string {
	return "store changed at " + e.At.Format(time.RFC3339Nano)
}

type storeSource struct {
	watcher Watcher
	onError func(error)

	mu     sync.Mutex
	out    chan lifecycle.Event
	closed bool
}

// NewSource creates a lifecycle.Source that emits a StoreChanged event after
// each burst of changes seen by w. Events are coalesced: while one is waiting
// to be read, further changes are dropped. onError receives the watch error,
// if any; it may be nil.
func NewSource(w Watcher, onError func(error)) lifecycle.Source {
	return &storeSource{
		watcher: w,
		onError: onError,
		out:     make(chan lifecycle.Event, 1),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start begins watching in the background. The events channel is closed when
// ctx is done or the watch fails.
func (s *storeSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer s.close()
		err := s.watcher.Watch(ctx, s.emit)
		if err != nil {
			s.report(err)
		}
		return err
	}, lifecycle.WithErrorHandler(func(err error) {
		s.report(fmt.Errorf("watch panic: %w", err))
	}))
	return nil
}

func (s *storeSource) report(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *storeSource) emit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.out <- StoreChanged{At: time.Now()}:
	default:
	}
}

func (s *storeSource) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.out)
	}
}
