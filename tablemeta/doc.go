/*
Package tablemeta interprets raw registry records for the host engine.

It is the only place that knows specific parameter keys. Everything here is
plain logic over a registry.Client and runs on the catalog's worker:

  - Lookup / LookupWithRetry: fetch a record as a LookupResult, retrying once
    with the upper-cased name
  - Kind, KindOf: table kind classification with ROW as the default
  - Params: case-insensitive parameter bag with fallbacks
  - TableSchema, ColumnMetadata: stored struct schema handling
  - Assemble: full ExternalTableMetaData for one table
  - NonStoreTables, StoreTablesByDatabase: whole-catalog enumeration

Assemble is not read-only with respect to its parameter view: a missing BUCKETS
value is filled with the configured default and shows up in the store handle's
properties.
*/
package tablemeta
