/*
Package sqlstore is a registry client backed by a SQL database.

Importing the package registers the "sqlite" driver with the registry package:

	import _ "github.com/suparena/storecatalog/datastore/sqlstore"

	client, err := registry.Open(ctx, config.Registry{Driver: "sqlite", DSN: "file:registry.db"})

Records live in two tables, registry_databases and registry_tables. Table
parameters and the storage descriptor are stored as JSON text. Statements are
built with squirrel using question-mark placeholders. The schema is managed by
goose migrations embedded from migrations/ and applied by Open.
*/
package sqlstore
