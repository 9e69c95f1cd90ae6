/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/storecatalog/config"
	"github.com/suparena/storecatalog/errors"
)

// Factory opens a new registry client from its configuration.
type Factory func(ctx context.Context, cfg config.Registry) (ReadWriter, error)

var (
	drivers   = make(map[string]Factory)
	driversMu sync.RWMutex
)

// RegisterDriver makes a registry backend available under name.
// If a driver is already registered for the name, it panics to prevent accidental overrides.
func RegisterDriver(name string, f Factory) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if _, exists := drivers[name]; exists {
		panic(fmt.Sprintf("registry: driver %q already registered", name))
	}
	drivers[name] = f
}

// Open constructs a client with the driver named in cfg.
func Open(ctx context.Context, cfg config.Registry) (ReadWriter, error) {
	driversMu.RLock()
	f, ok := drivers[cfg.Driver]
	driversMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (forgotten import?)", errors.ErrUnknownDriver, cfg.Driver)
	}
	client, err := f(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("registry: open %s: %w", cfg.Driver, err)
	}
	return client, nil
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
