/*
Package storagemodels defines the data structures exchanged between the registry
backends, the metadata translator and the host engine.

Key Types:

RawTable:
The registry's native table record. Parameters and serde parameters are an untyped
key/value bag; only the translator interprets specific keys.

	table := RawTable{
	    DBName:    "app",
	    TableName: "orders",
	    Parameters: map[string]string{
	        "TABLETYPE":         "COLUMN",
	        "COLUMN_BATCH_SIZE": "1000",
	    },
	}

ExternalTableMetaData:
The host engine's normalized view of a table. A new value is produced on every call;
nothing in this library caches it.

LookupResult:
The outcome of a registry lookup as data rather than as an error:

	switch res := tablemeta.LookupWithRetry(ctx, client, "app", "orders"); res.Status {
	case LookupFound:
	    use(res.Table)
	case LookupNotFound:
	    // absent, not an error
	case LookupFailed:
	    return res.Err
	}
*/
package storagemodels
