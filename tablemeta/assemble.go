/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablemeta

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/storagemodels"
)

// Options tunes metadata assembly.
type Options struct {
	// DefaultBuckets is used for tables without a BUCKETS parameter.
	DefaultBuckets int
}

// QualifiedName returns UPPER(db).UPPER(table).
func QualifiedName(db, table string) string {
	return strings.ToUpper(db) + "." + strings.ToUpper(table)
}

// Assemble turns a registry record into the host's table metadata.
//
// Store parameters are read from the serde parameters, falling back to the
// table parameters, case-insensitively. The schema, COLUMN_BATCH_SIZE and
// COLUMN_MAX_DELTA_ROWS are required; their absence or an unparseable integer
// is a MetadataError.
func Assemble(t *storagemodels.RawTable, opts Options) (*storagemodels.ExternalTableMetaData, error) {
	if t == nil {
		return nil, errors.NewTableNotFoundError("", "", nil)
	}
	fqn := QualifiedName(t.DBName, t.TableName)

	schema, ok, err := TableSchema(fqn, t.Parameters)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewMissingParameterError(fqn, SchemaKey)
	}

	params := NewParams(t.StorageDescriptor.SerDeInfo.Parameters, t.Parameters)

	partitions, err := TotalPartitions(params, fqn, opts.DefaultBuckets)
	if err != nil {
		return nil, err
	}

	baseTable, _ := params.Get(IndexedTableKey)

	dml, err := InsertDML(fqn, schema)
	if err != nil {
		return nil, err
	}

	var dependents []string
	if v, ok := params.Get(DependentRelationsKey); ok {
		dependents = strings.Split(v, ",")
	}

	batchSize, err := params.RequiredInt(fqn, ColumnBatchSizeKey)
	if err != nil {
		return nil, err
	}
	maxDeltaRows, err := params.RequiredInt(fqn, ColumnMaxDeltaRowsKey)
	if err != nil {
		return nil, err
	}

	codec, _ := params.Get(CompressionCodecKey)
	tableType, _ := NewParams(t.Parameters).Get(TableTypeKey)
	provider, _ := NewParams(t.Parameters).Get(ProviderKey)

	return &storagemodels.ExternalTableMetaData{
		EntityName: fqn,
		SchemaName: strings.ToUpper(t.DBName),
		Schema:     schema,
		TableType:  tableType,
		StoreHandle: &storagemodels.StoreHandle{
			Table:      fqn,
			Partitions: partitions,
			Schema:     schema,
			Properties: params.Map(),
		},
		ColumnBatchSize:    batchSize,
		ColumnMaxDeltaRows: maxDeltaRows,
		CompressionCodec:   codec,
		BaseTable:          baseTable,
		DML:                dml,
		DependentRelations: dependents,
		Provider:           provider,
		Columns:            ColumnMetadata(schema),
	}, nil
}

// InsertDML renders the positional insert statement for a table:
//
//	INSERT INTO APP.ORDERS VALUES (?,?,?)
func InsertDML(fqn string, schema *storagemodels.StructType) (string, error) {
	n := 0
	if schema != nil {
		n = len(schema.Fields)
	}
	placeholders := make([]any, n)
	for i := range placeholders {
		placeholders[i] = sq.Expr("?")
	}
	text, _, err := sq.Insert(fqn).Values(placeholders...).ToSql()
	if err != nil {
		return "", err
	}
	return text, nil
}
