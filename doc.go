/*
Package storecatalog serves a host SQL engine's catalog lookups from an external
metadata registry whose client is not safe for concurrent use.

All registry access goes through one worker goroutine that owns the client.
Callers on any goroutine build a Command, submit it and block until the worker
has run it, so catalog operations are totally ordered in submission order:

	cat, err := storecatalog.New(ctx, cfg, storecatalog.WithLockManager(locks))
	if err != nil {
	    return err
	}
	defer cat.Stop(ctx)

	md, err := cat.HiveTableMetaData(ctx, "app", "orders", false)

The worker interprets raw registry records with package tablemeta: kind
classification, schema decoding and full metadata assembly.

Reentrancy: some registry operations call back into the catalog while they run
(a drop may re-list tables). Such nested calls carry the worker scope in their
context. Nested listings return empty results; any other nested call runs inline
on the worker instead of being queued behind the command that issued it.

Registry drivers are selected by name (config.Registry.Driver) and become
available by importing their package, e.g. datastore/sqlstore or datastore/ddb.
*/
package storecatalog
