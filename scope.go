/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storecatalog

import (
	"context"
	"sync/atomic"

	"github.com/suparena/storecatalog/registry"
)

// session is the worker's private state. Only the worker goroutine touches it.
type session struct {
	client registry.Client
}

type scopeKey struct{}

// scope marks a context as belonging to one running top-level command of one
// catalog. It is live only while that command runs on the worker. A context
// captured inside a command must not be handed to other goroutines; once the
// command returns, calls made with it are queued like any other.
type scope struct {
	owner   *Catalog
	session *session
	active  atomic.Bool
}

// withScope marks ctx as running inside a command on the worker.
func withScope(ctx context.Context, sc *scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, sc)
}

// scopeFrom returns the live scope of a command running on c's worker.
// Scopes of finished commands and of other catalogs are ignored.
func (c *Catalog) scopeFrom(ctx context.Context) (*scope, bool) {
	sc, ok := ctx.Value(scopeKey{}).(*scope)
	if !ok || sc == nil || sc.owner != c || !sc.active.Load() {
		return nil, false
	}
	return sc, true
}

// LockManager is the host engine's lock manager. The worker switches lock
// acquisition off for the duration of commands that ask for it.
type LockManager interface {
	SkipLocks(skip bool)
}

type noopLockManager struct{}

func (noopLockManager) SkipLocks(bool) {}
