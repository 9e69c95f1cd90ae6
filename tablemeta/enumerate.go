/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablemeta

import (
	"context"
	"fmt"
	"strings"

	"github.com/suparena/storecatalog/registry"
	"github.com/suparena/storecatalog/storagemodels"
)

// visit walks every table of every database, fetching each record with its
// own round-trip. Tables dropped between listing and fetching are skipped.
func visit(ctx context.Context, client registry.Client, onDatabase func(db string), fn func(t *storagemodels.RawTable) error) error {
	dbs, err := client.DatabaseNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list databases: %w", err)
	}
	for _, db := range dbs {
		if onDatabase != nil {
			onDatabase(db)
		}
		names, err := client.TableNames(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to list tables of %s: %w", db, err)
		}
		for _, name := range names {
			res := Lookup(ctx, client, db, name)
			switch res.Status {
			case storagemodels.LookupFailed:
				return res.Err
			case storagemodels.LookupNotFound:
				continue
			}
			if err := fn(res.Table); err != nil {
				return err
			}
		}
	}
	return nil
}

// NonStoreTables lists tables whose kind is none of row, column or index,
// e.g. external and stream tables, plus tables that declare no kind at all.
// Names are upper-cased.
func NonStoreTables(ctx context.Context, client registry.Client) ([]*storagemodels.ExternalTableMetaData, error) {
	var out []*storagemodels.ExternalTableMetaData
	err := visit(ctx, client, nil, func(t *storagemodels.RawTable) error {
		params := NewParams(t.Parameters)
		tableType, _ := params.Get(TableTypeKey)
		if kind, ok := DeclaredKind(t.Parameters); ok && kind.IsInStore() {
			return nil
		}
		schema, _, err := TableSchema(QualifiedName(t.DBName, t.TableName), t.Parameters)
		if err != nil {
			return err
		}
		provider, _ := params.Get(ProviderKey)
		out = append(out, &storagemodels.ExternalTableMetaData{
			EntityName:         strings.ToUpper(t.TableName),
			SchemaName:         strings.ToUpper(t.DBName),
			TableType:          tableType,
			Schema:             schema,
			ColumnBatchSize:    -1,
			ColumnMaxDeltaRows: -1,
			Provider:           provider,
			Columns:            ColumnMetadata(schema),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// StoreTablesByDatabase maps UPPER(db) to the upper-cased names of its tables
// whose declared kind is row, column or sample. Every database gets an entry.
func StoreTablesByDatabase(ctx context.Context, client registry.Client) (map[string][]string, error) {
	out := make(map[string][]string)
	var current string
	err := visit(ctx, client, func(db string) {
		current = strings.ToUpper(db)
		if _, ok := out[current]; !ok {
			out[current] = []string{}
		}
	}, func(t *storagemodels.RawTable) error {
		if kind, ok := DeclaredKind(t.Parameters); ok && kind.IsStoreManaged() {
			out[current] = append(out[current], strings.ToUpper(t.TableName))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
