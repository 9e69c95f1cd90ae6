/*
Package errors provides semantic error types for the storecatalog library.

The taxonomy follows how a catalog caller is expected to react:

	var (
	    ErrNotFound          = errors.New("object not found")          // recoverable, mapped to nil/false results
	    ErrTableNotFound     = errors.New("table not found")           // registry unreachable or protocol failure
	    ErrMalformedMetadata = errors.New("malformed table metadata")  // corrupt catalog entry, fatal
	    ErrDispatcherStopped = errors.New("dispatcher stopped")        // work submitted after Stop
	    ErrInitFailed        = errors.New("registry client initialization failed")
	)

Usage:

	meta, err := catalog.HiveTableMetaData(ctx, "app", "orders", false)
	if err != nil {
	    if errors.IsMalformedMetadata(err) {
	        // data-integrity bug in the registry entry, do not retry
	    }
	    return err
	}

Typed errors (TableNotFoundError, MetadataError, CommandError, InitError) implement
Unwrap so the registry or parse cause stays reachable through errors.As.
*/
package errors
