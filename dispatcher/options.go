/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatcher

import (
	"log/slog"
)

// Options configures a Dispatcher.
type Options struct {
	Name      string       // Worker name shown in logs (default: "registry-client-0")
	QueueSize int          // Buffered submissions before Submit blocks (default: 64)
	Logger    *slog.Logger // Defaults to slog.Default()
}

// Option is a functional option for configuring a Dispatcher.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Name:      "registry-client-0",
		QueueSize: 64,
		Logger:    slog.Default(),
	}
}

// WithName sets the worker name.
func WithName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Name = name
		}
	}
}

// WithQueueSize sets the submission buffer.
func WithQueueSize(size int) Option {
	return func(o *Options) {
		if size > 0 {
			o.QueueSize = size
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
