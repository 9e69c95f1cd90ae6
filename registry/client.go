/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"

	"github.com/suparena/storecatalog/storagemodels"
)

// Client is a stateful connection to the metadata registry. Implementations
// are not required to be safe for concurrent use; the catalog confines each
// Client to a single worker.
type Client interface {
	DatabaseNames(ctx context.Context) ([]string, error)

	TableNames(ctx context.Context, db string) ([]string, error)

	// GetTable returns an error matching errors.ErrNotFound when the registry
	// holds no such table.
	GetTable(ctx context.Context, db, name string) (*storagemodels.RawTable, error)

	// DropTable returns an error matching errors.ErrNotFound when the table is absent.
	DropTable(ctx context.Context, db, name string) error

	Close() error
}

// Writer seeds a registry. It is not part of the catalog's read path.
type Writer interface {
	CreateDatabase(ctx context.Context, name string) error

	PutTable(ctx context.Context, table storagemodels.RawTable) error
}

// ReadWriter is a Client that can also be seeded.
type ReadWriter interface {
	Client
	Writer
}
