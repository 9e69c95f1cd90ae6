/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/suparena/storecatalog/errors"
)

// Task is one unit of work executed on the worker against the session it owns.
type Task[S any] func(ctx context.Context, session S) (any, error)

type job[S any] struct {
	ctx  context.Context
	task Task[S]
	fut  *Future
}

// Dispatcher runs every submitted task on exactly one goroutine, in submission
// order. The session value is created on that goroutine and never leaves it.
type Dispatcher[S any] struct {
	name   string
	logger *slog.Logger

	jobs chan *job[S]
	quit chan struct{}
	done chan struct{}

	mu       sync.RWMutex
	stopped  bool
	stopOnce sync.Once
	drained  bool
}

// New starts the worker and runs open on it before accepting any other work.
// An open failure stops the worker and is returned as an errors.InitError.
func New[S any](ctx context.Context, open func(ctx context.Context) (S, error), opts ...Option) (*Dispatcher[S], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dispatcher[S]{
		name:   o.Name,
		logger: o.Logger.With("worker", o.Name),
		jobs:   make(chan *job[S], o.QueueSize),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	ready := make(chan error, 1)
	go d.run(ctx, open, ready)

	if err := <-ready; err != nil {
		d.logger.Error("Worker failed to initialize.", "error", err)
		return nil, &errors.InitError{Worker: d.name, Err: err}
	}
	return d, nil
}

// Name returns the worker name.
func (d *Dispatcher[S]) Name() string {
	return d.name
}

// run is the worker loop. The session is a local of this goroutine.
func (d *Dispatcher[S]) run(ctx context.Context, open func(ctx context.Context) (S, error), ready chan<- error) {
	defer close(d.done)

	session, err := d.open(ctx, open)
	ready <- err
	if err != nil {
		return
	}

	d.logger.Debug("Worker started.")
	for j := range d.jobs {
		d.execute(session, j)
	}
	d.logger.Debug("Worker finished.")
}

func (d *Dispatcher[S]) open(ctx context.Context, open func(ctx context.Context) (S, error)) (session S, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during open: %v", r)
		}
	}()
	return open(ctx)
}

func (d *Dispatcher[S]) execute(session S, j *job[S]) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Task panicked.", "panic", r)
			j.fut.complete(nil, fmt.Errorf("worker %s: task panicked: %v", d.name, r))
		}
	}()

	v, err := j.task(j.ctx, session)
	j.fut.complete(v, err)
}

// Submit enqueues task and returns its future. It never blocks past shutdown:
// once the dispatcher is stopped the returned future has already failed with
// errors.ErrDispatcherStopped. The task runs with ctx's values but not its
// cancellation; a caller can stop waiting, not stop the task.
func (d *Dispatcher[S]) Submit(ctx context.Context, task Task[S]) *Future {
	fut := newFuture()

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		fut.complete(nil, errors.ErrDispatcherStopped)
		return fut
	}

	j := &job[S]{ctx: context.WithoutCancel(ctx), task: task, fut: fut}
	select {
	case d.jobs <- j:
	case <-d.quit:
		fut.complete(nil, errors.ErrDispatcherStopped)
	case <-ctx.Done():
		fut.complete(nil, ctx.Err())
	}
	return fut
}

// Call submits fn and waits for its typed result.
func Call[S, R any](ctx context.Context, d *Dispatcher[S], fn func(ctx context.Context, session S) (R, error)) (R, error) {
	var zero R
	v, err := d.Submit(ctx, func(ctx context.Context, session S) (any, error) {
		return fn(ctx, session)
	}).Wait(ctx)
	if err != nil {
		return zero, err
	}
	r, ok := v.(R)
	if !ok {
		return zero, nil
	}
	return r, nil
}

// Shutdown runs closeFn on the worker (best effort, its error is only logged),
// stops accepting work and waits for queued tasks to finish. The close task
// and the drain share one deadline, grace from the call. It reports whether
// the worker drained in time. Later calls return the first call's result.
func (d *Dispatcher[S]) Shutdown(ctx context.Context, closeFn Task[S], grace time.Duration) bool {
	d.stopOnce.Do(func() {
		deadline := time.Now().Add(grace)

		if closeFn != nil {
			closeCtx, cancel := context.WithDeadline(ctx, deadline)
			if _, err := d.Submit(closeCtx, closeFn).Wait(closeCtx); err != nil {
				d.logger.Warn("Close task failed during shutdown.", "error", err)
			}
			cancel()
		}

		close(d.quit)
		d.mu.Lock()
		d.stopped = true
		close(d.jobs)
		d.mu.Unlock()

		timer := time.NewTimer(time.Until(deadline))
		defer timer.Stop()

		select {
		case <-d.done:
			d.drained = true
		case <-timer.C:
			d.logger.Warn("Worker did not drain within the grace period; abandoning it.", "grace", grace)
		}
	})
	return d.drained
}

// Stopped reports whether Shutdown has begun rejecting work.
func (d *Dispatcher[S]) Stopped() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stopped
}
