/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablemeta

import (
	"context"
	"strings"

	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/registry"
	"github.com/suparena/storecatalog/storagemodels"
)

// Lookup fetches one table record. A registry "no such object" becomes
// NotFound; any other client failure becomes Failed with a TableNotFoundError
// carrying the cause.
func Lookup(ctx context.Context, client registry.Client, db, name string) storagemodels.LookupResult {
	t, err := client.GetTable(ctx, db, name)
	switch {
	case err == nil && t != nil:
		return storagemodels.Found(t)
	case err == nil, errors.IsNotFound(err):
		return storagemodels.NotFound()
	default:
		return storagemodels.Failed(errors.NewTableNotFoundError(db, name, err))
	}
}

// LookupWithRetry looks the name up as given and, when that does not find the
// table for any reason, once more with the name upper-cased. The registry
// folds identifiers internally but query text may not. The second outcome is
// final.
func LookupWithRetry(ctx context.Context, client registry.Client, db, name string) storagemodels.LookupResult {
	res := Lookup(ctx, client, db, name)
	if res.IsFound() {
		return res
	}
	upper := strings.ToUpper(name)
	if upper == name {
		return res
	}
	return Lookup(ctx, client, db, upper)
}
