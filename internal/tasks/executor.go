package tasks

import (
	"context"
	"fmt"
)

// Executor bounds the number of concurrently running blocking calls so
// catalog and credential I/O never stalls unrelated activity.
//
// The zero value is not usable; construct with [NewExecutor].
type Executor struct {
	slots chan struct{}
}

// NewExecutor creates an executor with the given concurrency bound.
// Bounds below one are treated as one.
func NewExecutor(size int) *Executor {
	if size < 1 {
		size = 1
	}
	return &Executor{slots: make(chan struct{}, size)}
}

// Do runs fn once a slot is available, blocking the calling goroutine until
// the function returns or ctx is cancelled while waiting for a slot.
func (e *Executor) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	select {
	case e.slots <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("executor wait cancelled: %w", ctx.Err())
	}
	defer func() { <-e.slots }()

	return fn(ctx)
}
