/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory registry client for testing
package mock

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/storagemodels"
)

// Hook observes a registry call from inside the client, the way a real
// registry may call back into the host while serving a request.
type Hook func(ctx context.Context, db, table string)

// Registry is an in-memory registry.ReadWriter. Like a real registry client it
// expects to be driven by one goroutine at a time; overlapping calls are
// counted as confinement violations instead of being serialized.
type Registry struct {
	mu        sync.Mutex
	databases map[string]map[string]storagemodels.RawTable

	getErrors map[string]error
	listError error
	dropError error
	openError error
	closeErr  error
	dropHook  Hook
	getHook   Hook
	delay     time.Duration

	active     int32
	violations int64
	calls      map[string]int
	closed     bool
}

// New creates a new empty mock Registry
func New() *Registry {
	return &Registry{
		databases: make(map[string]map[string]storagemodels.RawTable),
		getErrors: make(map[string]error),
		calls:     make(map[string]int),
	}
}

// WithGetTableError makes GetTable for the exact name fail with err
func (m *Registry) WithGetTableError(name string, err error) *Registry {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErrors[name] = err
	return m
}

// WithListError makes DatabaseNames and TableNames fail
func (m *Registry) WithListError(err error) *Registry {
	m.listError = err
	return m
}

// WithDropError makes DropTable fail
func (m *Registry) WithDropError(err error) *Registry {
	m.dropError = err
	return m
}

// WithOpenError makes Open fail
func (m *Registry) WithOpenError(err error) *Registry {
	m.openError = err
	return m
}

// WithCloseError makes Close fail after marking the client closed
func (m *Registry) WithCloseError(err error) *Registry {
	m.closeErr = err
	return m
}

// WithDropHook runs h at the start of DropTable, on the calling goroutine
func (m *Registry) WithDropHook(h Hook) *Registry {
	m.dropHook = h
	return m
}

// WithGetHook runs h at the start of GetTable, on the calling goroutine
func (m *Registry) WithGetHook(h Hook) *Registry {
	m.getHook = h
	return m
}

// WithDelay makes every call sleep, widening windows for overlap detection
func (m *Registry) WithDelay(d time.Duration) *Registry {
	m.delay = d
	return m
}

// Open hands out the registry as a client, or the configured open error.
// It is meant to be called from the catalog's worker.
func (m *Registry) Open(ctx context.Context) (*Registry, error) {
	if m.openError != nil {
		return nil, m.openError
	}
	m.mu.Lock()
	m.closed = false
	m.mu.Unlock()
	return m, nil
}

func (m *Registry) enter(op string) func() {
	if atomic.AddInt32(&m.active, 1) > 1 {
		atomic.AddInt64(&m.violations, 1)
	}
	m.mu.Lock()
	m.calls[op]++
	m.mu.Unlock()
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return func() { atomic.AddInt32(&m.active, -1) }
}

func (m *Registry) checkOpen() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.ErrClientClosed
	}
	return nil
}

// DatabaseNames returns the database names in sorted order
func (m *Registry) DatabaseNames(ctx context.Context) ([]string, error) {
	defer m.enter("DatabaseNames")()
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	if m.listError != nil {
		return nil, m.listError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.databases))
	for db := range m.databases {
		names = append(names, db)
	}
	sort.Strings(names)
	return names, nil
}

// TableNames returns the table names of db in sorted order
func (m *Registry) TableNames(ctx context.Context, db string) ([]string, error) {
	defer m.enter("TableNames")()
	if err := m.checkOpen(); err != nil {
		return nil, err
	}
	if m.listError != nil {
		return nil, m.listError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tables, ok := m.databases[db]
	if !ok {
		return nil, errors.NewNotFoundError("database", db)
	}
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetTable retrieves a table record by exact name
func (m *Registry) GetTable(ctx context.Context, db, name string) (*storagemodels.RawTable, error) {
	if m.getHook != nil {
		m.getHook(ctx, db, name)
	}
	defer m.enter("GetTable")()
	if err := m.checkOpen(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.getErrors[name]; ok {
		return nil, err
	}
	t, ok := m.databases[db][name]
	if !ok {
		return nil, errors.NewNotFoundError("table", db+"."+name)
	}
	cp := copyTable(t)
	return &cp, nil
}

// DropTable removes a table record by exact name
func (m *Registry) DropTable(ctx context.Context, db, name string) error {
	if m.dropHook != nil {
		m.dropHook(ctx, db, name)
	}
	defer m.enter("DropTable")()
	if err := m.checkOpen(); err != nil {
		return err
	}
	if m.dropError != nil {
		return m.dropError
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.databases[db][name]; !ok {
		return errors.NewNotFoundError("table", db+"."+name)
	}
	delete(m.databases[db], name)
	return nil
}

// Close marks the client closed; later calls fail with errors.ErrClientClosed
func (m *Registry) Close() error {
	defer m.enter("Close")()
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return m.closeErr
}

// CreateDatabase adds an empty database if it does not exist
func (m *Registry) CreateDatabase(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.databases[name]; !ok {
		m.databases[name] = make(map[string]storagemodels.RawTable)
	}
	return nil
}

// PutTable stores a table record, creating its database if needed
func (m *Registry) PutTable(ctx context.Context, t storagemodels.RawTable) error {
	if t.DBName == "" || t.TableName == "" {
		return errors.NewValidationError("table", "database and table name are required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.databases[t.DBName]; !ok {
		m.databases[t.DBName] = make(map[string]storagemodels.RawTable)
	}
	if time.Time(t.CreateTime).IsZero() {
		t.CreateTime = strfmt.DateTime(time.Now().UTC())
	}
	m.databases[t.DBName][t.TableName] = copyTable(t)
	return nil
}

// Helper methods for testing

// Violations returns how many calls overlapped another call
func (m *Registry) Violations() int64 {
	return atomic.LoadInt64(&m.violations)
}

// Calls returns how often op was invoked
func (m *Registry) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Closed reports whether Close was called
func (m *Registry) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Count returns the number of stored tables
func (m *Registry) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, tables := range m.databases {
		n += len(tables)
	}
	return n
}

func copyTable(t storagemodels.RawTable) storagemodels.RawTable {
	t.Parameters = copyMap(t.Parameters)
	t.StorageDescriptor.SerDeInfo.Parameters = copyMap(t.StorageDescriptor.SerDeInfo.Parameters)
	return t
}

func copyMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
