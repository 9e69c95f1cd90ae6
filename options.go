/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storecatalog

import (
	"context"
	"log/slog"

	"github.com/suparena/storecatalog/registry"
)

// Opener creates the registry client. It is called once, on the worker.
type Opener func(ctx context.Context) (registry.Client, error)

type options struct {
	logger *slog.Logger
	locks  LockManager
	opener Opener
}

// Option configures a Catalog.
type Option func(*options)

// WithLogger sets the logger used by the catalog and its worker.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLockManager installs the host's lock manager.
func WithLockManager(lm LockManager) Option {
	return func(o *options) {
		if lm != nil {
			o.locks = lm
		}
	}
}

// WithOpener replaces the configured registry driver.
func WithOpener(open Opener) Option {
	return func(o *options) {
		if open != nil {
			o.opener = open
		}
	}
}
