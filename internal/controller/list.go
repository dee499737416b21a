// Package controller holds the per-entity list controllers: fetch, hold,
// refresh on trigger, and mutate a collection while surfacing loading and
// error state.
package controller

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Aryaman-leo/HRMS-Frontend/internal/api"
	"github.com/Aryaman-leo/HRMS-Frontend/internal/notify"
)

const msgGenericError = "Something went wrong. Please try again."

// displayMessage converts an error to the string shown to the user. Server
// messages pass through; transport and decode failures collapse to a
// generic message.
func displayMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return msgGenericError
}

// List is the generic fetch/hold/refresh core shared by every entity
// controller.
type List[T any] struct {
	mu      sync.Mutex
	fetch   func(ctx context.Context) ([]T, error)
	hub     *notify.Hub
	log     *zap.Logger
	items   []T
	loading bool
	errMsg  string
	seq     int
}

func NewList[T any](fetch func(ctx context.Context) ([]T, error), hub *notify.Hub, log *zap.Logger) *List[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &List[T]{fetch: fetch, hub: hub, log: log}
}

// Refresh re-fetches the collection. A refresh that has been superseded by a
// newer one, or whose context was cancelled, commits nothing; the loading
// flag always ends up cleared by whichever call owns the latest sequence.
func (l *List[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.loading = true
	l.errMsg = ""
	l.seq++
	seq := l.seq
	l.mu.Unlock()

	items, err := l.fetch(ctx)

	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		return nil
	}
	l.loading = false
	if ctx.Err() != nil {
		l.mu.Unlock()
		return ctx.Err()
	}
	if err != nil {
		message := displayMessage(err)
		l.errMsg = message
		l.items = nil
		l.mu.Unlock()
		l.log.Warn("list refresh failed", zap.Error(err))
		if l.hub != nil {
			l.hub.Error(message)
		}
		return err
	}
	l.items = items
	l.mu.Unlock()
	return nil
}

// Watch re-fetches whenever the trigger fires, until ctx is done.
func (l *List[T]) Watch(ctx context.Context, trigger *RefreshTrigger) {
	ch := trigger.Subscribe()
	go func() {
		defer trigger.Unsubscribe(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				_ = l.Refresh(ctx)
			}
		}
	}()
}

func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

func (l *List[T]) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errMsg
}

// SetError records a list-level error without touching the items. Mutation
// failures use this so the list keeps rendering its last good data.
func (l *List[T]) SetError(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = message
}

// ClearError dismisses the error banner.
func (l *List[T]) ClearError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = ""
}

// Remove drops the first item matching the predicate from local state; used
// for optimistic removal after a confirmed delete.
func (l *List[T]) Remove(match func(T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, item := range l.items {
		if match(item) {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}
