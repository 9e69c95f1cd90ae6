/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storecatalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/storecatalog/config"
	"github.com/suparena/storecatalog/dispatcher"
	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/registry"
	"github.com/suparena/storecatalog/storagemodels"
	"github.com/suparena/storecatalog/tablemeta"
)

// Catalog serves the host engine's catalog queries from a registry whose
// client must only be used by one goroutine. Every call becomes a Command
// that runs on the catalog's single worker; the caller blocks until it is done.
//
// A Catalog is safe for concurrent use.
type Catalog struct {
	cfg    config.Config
	logger *slog.Logger
	locks  LockManager
	opener Opener
	worker *dispatcher.Dispatcher[*session]
}

// New starts the worker and opens the registry client on it. It fails if the
// client cannot be opened.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Catalog, error) {
	cfg.ApplyDefaults()

	o := options{logger: slog.Default(), locks: noopLockManager{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.opener == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		reg := cfg.Registry
		o.opener = func(ctx context.Context) (registry.Client, error) {
			return registry.Open(ctx, reg)
		}
	}

	c := &Catalog{
		cfg:    cfg,
		logger: o.logger.With("component", "catalog"),
		locks:  o.locks,
		opener: o.opener,
	}

	initCmd := newCommand(OpInit, "", "", false)
	worker, err := dispatcher.New(ctx, func(ctx context.Context) (*session, error) {
		s := &session{}
		if _, err := c.run(ctx, s, initCmd); err != nil {
			return nil, err
		}
		return s, nil
	},
		dispatcher.WithName(cfg.Catalog.WorkerName),
		dispatcher.WithQueueSize(cfg.Catalog.QueueSize),
		dispatcher.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}
	c.worker = worker

	c.logger.Info("Catalog started.", "driver", cfg.Registry.Driver, "worker", worker.Name())
	return c, nil
}

// GetTable returns the registry record of schema.table, or nil when the
// registry does not hold it. A name that is not found as given is looked up
// once more upper-cased.
func (c *Catalog) GetTable(ctx context.Context, schema, table string, skipLocks bool) (*storagemodels.RawTable, error) {
	return execute[*storagemodels.RawTable](ctx, c, newCommand(OpGetTable, schema, table, skipLocks))
}

// IsRowTable reports whether schema.table is a row table. Tables without a
// recorded kind, and tables the registry does not hold, count as row tables.
func (c *Catalog) IsRowTable(ctx context.Context, schema, table string, skipLocks bool) (bool, error) {
	return execute[bool](ctx, c, newCommand(OpIsRowTable, schema, table, skipLocks))
}

// IsColumnTable is the negation of IsRowTable.
func (c *Catalog) IsColumnTable(ctx context.Context, schema, table string, skipLocks bool) (bool, error) {
	return execute[bool](ctx, c, newCommand(OpIsColumnTable, schema, table, skipLocks))
}

// NonStoreTables lists the tables whose data does not live in the store.
// Called from inside a running command, it returns an empty list.
func (c *Catalog) NonStoreTables(ctx context.Context, skipLocks bool) ([]*storagemodels.ExternalTableMetaData, error) {
	return execute[[]*storagemodels.ExternalTableMetaData](ctx, c, newCommand(OpNonStoreTables, "", "", skipLocks))
}

type schemaText struct {
	text string
	ok   bool
}

// ColumnTableSchemaJSON returns the stored schema of schema.table. ok is false
// when the table is absent or stores no schema.
func (c *Catalog) ColumnTableSchemaJSON(ctx context.Context, schema, table string, skipLocks bool) (string, bool, error) {
	st, err := execute[schemaText](ctx, c, newCommand(OpColumnTableSchema, schema, table, skipLocks))
	return st.text, st.ok, err
}

// HiveTableMetaData assembles the full metadata of schema.table. An absent
// table is an errors.TableNotFoundError.
func (c *Catalog) HiveTableMetaData(ctx context.Context, schema, table string, skipLocks bool) (*storagemodels.ExternalTableMetaData, error) {
	return execute[*storagemodels.ExternalTableMetaData](ctx, c, newCommand(OpHiveTableMetaData, schema, table, skipLocks))
}

// AllStoreTablesInCatalog maps every database (upper-cased) to the upper-cased
// names of its store-managed tables. Called from inside a running command, it
// returns an empty map.
func (c *Catalog) AllStoreTablesInCatalog(ctx context.Context, skipLocks bool) (map[string][]string, error) {
	return execute[map[string][]string](ctx, c, newCommand(OpAllStoreTables, "", "", skipLocks))
}

// RemoveTable drops schema.table from the registry. It reports false when the
// table did not exist.
func (c *Catalog) RemoveTable(ctx context.Context, schema, table string, skipLocks bool) (bool, error) {
	return execute[bool](ctx, c, newCommand(OpRemoveTable, schema, table, skipLocks))
}

// CatalogSchemaName is the schema the host reserves for the registry's own tables.
func (c *Catalog) CatalogSchemaName() string {
	return c.cfg.Catalog.SchemaName
}

// Stop closes the registry client on the worker and stops accepting commands,
// waiting up to the configured grace period for queued commands. Failures are
// logged, not returned. Calls after the first are no-ops; commands issued
// after Stop fail with errors.ErrDispatcherStopped.
func (c *Catalog) Stop(ctx context.Context) {
	if c.worker.Stopped() {
		return
	}
	closeCmd := newCommand(OpClose, "", "", true)
	drained := c.worker.Shutdown(ctx, func(ctx context.Context, s *session) (any, error) {
		return c.run(ctx, s, closeCmd)
	}, c.cfg.Catalog.ShutdownGrace)
	if !drained {
		c.logger.Warn("Catalog worker abandoned before draining.", "grace", c.cfg.Catalog.ShutdownGrace)
		return
	}
	c.logger.Info("Catalog stopped.")
}

// execute runs cmd and returns its typed result. A call made from inside a
// running command (its ctx carries the live worker scope) runs inline on the
// worker session; queueing it would wait on the worker that is waiting for it.
func execute[R any](ctx context.Context, c *Catalog, cmd Command) (R, error) {
	runTyped := func(ctx context.Context, s *session) (R, error) {
		var zero R
		v, err := c.run(ctx, s, cmd)
		if err != nil {
			return zero, err
		}
		r, _ := v.(R)
		return r, nil
	}
	if sc, ok := c.scopeFrom(ctx); ok {
		return runTyped(ctx, sc.session)
	}
	return dispatcher.Call(ctx, c.worker, runTyped)
}

// run executes cmd on the worker. Top-level commands enter the worker scope
// and toggle skip-locks around the command; nested ones inherit both, and
// nested listings short-circuit to an empty result.
func (c *Catalog) run(ctx context.Context, s *session, cmd Command) (any, error) {
	log := c.logger.With("op", cmd.Op.String(), "command_id", cmd.ID)

	if _, nested := c.scopeFrom(ctx); nested {
		if cmd.Op.listing() {
			log.Debug("Suppressed nested catalog listing.")
			return emptyListing(cmd.Op), nil
		}
	} else {
		sc := &scope{owner: c, session: s}
		sc.active.Store(true)
		defer sc.active.Store(false)
		ctx = withScope(ctx, sc)
		if cmd.SkipLocks {
			c.locks.SkipLocks(true)
		}
		defer c.locks.SkipLocks(false)
	}

	log.Debug("Executing catalog command.", "schema", cmd.Schema, "table", cmd.Table, "skip_locks", cmd.SkipLocks)
	v, err := c.dispatch(ctx, s, cmd)
	if err != nil {
		log.Debug("Catalog command failed.", "error", err)
		return nil, &errors.CommandError{Op: cmd.Op.String(), Err: err}
	}
	return v, nil
}

func emptyListing(op Op) any {
	if op == OpAllStoreTables {
		return map[string][]string{}
	}
	return []*storagemodels.ExternalTableMetaData{}
}

func (c *Catalog) dispatch(ctx context.Context, s *session, cmd Command) (any, error) {
	switch cmd.Op {
	case OpInit:
		client, err := c.opener(ctx)
		if err != nil {
			return nil, err
		}
		s.client = client
		return nil, nil
	case OpClose:
		if s.client == nil {
			return nil, nil
		}
		err := s.client.Close()
		s.client = nil
		return nil, err
	}

	if s.client == nil {
		return nil, errors.ErrClientClosed
	}

	switch cmd.Op {
	case OpGetTable:
		res := tablemeta.LookupWithRetry(ctx, s.client, cmd.Schema, cmd.Table)
		if res.Status == storagemodels.LookupFailed {
			return nil, res.Err
		}
		return res.Table, nil

	case OpIsRowTable, OpIsColumnTable:
		res := tablemeta.LookupWithRetry(ctx, s.client, cmd.Schema, cmd.Table)
		if res.Status == storagemodels.LookupFailed {
			return nil, res.Err
		}
		row := tablemeta.KindOf(res).IsRow()
		if cmd.Op == OpIsColumnTable {
			return !row, nil
		}
		return row, nil

	case OpColumnTableSchema:
		res := tablemeta.LookupWithRetry(ctx, s.client, cmd.Schema, cmd.Table)
		switch res.Status {
		case storagemodels.LookupFailed:
			return nil, res.Err
		case storagemodels.LookupNotFound:
			return schemaText{}, nil
		}
		fqn := tablemeta.QualifiedName(res.Table.DBName, res.Table.TableName)
		text, ok, err := tablemeta.SchemaJSON(fqn, res.Table.Parameters)
		if err != nil {
			return nil, err
		}
		return schemaText{text: text, ok: ok}, nil

	case OpHiveTableMetaData:
		res := tablemeta.LookupWithRetry(ctx, s.client, cmd.Schema, cmd.Table)
		switch res.Status {
		case storagemodels.LookupFailed:
			return nil, res.Err
		case storagemodels.LookupNotFound:
			return nil, errors.NewTableNotFoundError(cmd.Schema, cmd.Table, nil)
		}
		return tablemeta.Assemble(res.Table, tablemeta.Options{DefaultBuckets: c.cfg.Catalog.DefaultBuckets})

	case OpNonStoreTables:
		return tablemeta.NonStoreTables(ctx, s.client)

	case OpAllStoreTables:
		return tablemeta.StoreTablesByDatabase(ctx, s.client)

	case OpRemoveTable:
		err := s.client.DropTable(ctx, cmd.Schema, cmd.Table)
		if errors.IsNotFound(err) {
			return false, nil
		}
		if err != nil {
			return nil, err
		}
		return true, nil
	}

	return nil, fmt.Errorf("unsupported catalog operation %s", cmd.Op)
}
