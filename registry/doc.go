/*
Package registry defines the contract of the external metadata registry and keeps
the process-wide tables that backends register into.

Client:
The minimal surface the catalog needs: list databases, list tables, fetch one table
record, drop a table, close. A Client is a stateful handle and is never shared
between goroutines by the catalog.

Drivers:
Backends register a Factory under a name, typically from an init function:

	func init() {
	    registry.RegisterDriver("sqlite", openSQLite)
	}

	client, err := registry.Open(ctx, cfg.Registry)

Key templates:
Backends with composite keys register their key patterns per record type:

	registry.RegisterIndexMap[tableItem](map[string]string{
	    "PK": "DB#{DBName}",
	    "SK": "TABLE#{TableName}",
	})

Both tables are guarded by mutexes and should be populated during initialization.
*/
package registry
