// Package operation runs mutating environment operations on their own
// goroutine and reports completion through a future.
package operation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Jim-Karanja/ubuntu-dev-manager/internal/logging"
)

// Operation is the future for one running operation.
type Operation struct {
	ID      string
	Kind    string
	Target  string
	Started time.Time

	done     chan struct{}
	mu       sync.Mutex
	err      error
	finished time.Time
}

// Go starts fn on a new goroutine. fn receives a context that carries the
// values of ctx but is never cancelled: once dispatched, an operation runs
// until the external tool returns.
func Go(ctx context.Context, kind, target string, fn func(context.Context) error) *Operation {
	op := &Operation{
		ID:      uuid.NewString(),
		Kind:    kind,
		Target:  target,
		Started: time.Now(),
		done:    make(chan struct{}),
	}

	runCtx := context.WithoutCancel(ctx)
	logging.Debug("operation started", "id", op.ID, "kind", kind, "target", target)

	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%s %s panicked: %v", kind, target, r)
			}
			op.finish(err)
		}()
		err = fn(runCtx)
	}()

	return op
}

func (o *Operation) finish(err error) {
	o.mu.Lock()
	o.err = err
	o.finished = time.Now()
	o.mu.Unlock()

	logging.Debug("operation finished", "id", o.ID, "kind", o.Kind, "target", o.Target,
		"duration", o.finished.Sub(o.Started), "error", err)
	close(o.done)
}

// Done is closed when the operation has finished.
func (o *Operation) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the operation finishes and returns its error.
func (o *Operation) Wait() error {
	<-o.done
	return o.Err()
}

// Err returns the operation's error. It is nil while the operation runs.
func (o *Operation) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// Finished reports whether the operation has completed.
func (o *Operation) Finished() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// Duration returns how long the operation ran, or has been running.
func (o *Operation) Duration() time.Duration {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.finished.IsZero() {
		return time.Since(o.Started)
	}
	return o.finished.Sub(o.Started)
}

func (o *Operation) String() string {
	return fmt.Sprintf("%s %s (%s)", o.Kind, o.Target, o.ID)
}
