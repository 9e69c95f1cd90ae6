/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/go-openapi/strfmt"
)

// SerDeInfo describes how the table's storage is serialized.
type SerDeInfo struct {
	Name             string            `json:"name,omitempty" yaml:"name,omitempty"`
	SerializationLib string            `json:"serializationLib,omitempty" yaml:"serializationLib,omitempty"`
	Parameters       map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// StorageDescriptor is the physical storage section of a registry record.
type StorageDescriptor struct {
	Location     string    `json:"location,omitempty" yaml:"location,omitempty"`
	InputFormat  string    `json:"inputFormat,omitempty" yaml:"inputFormat,omitempty"`
	OutputFormat string    `json:"outputFormat,omitempty" yaml:"outputFormat,omitempty"`
	SerDeInfo    SerDeInfo `json:"serdeInfo" yaml:"serdeInfo"`
}

// RawTable is the registry's representation of one table.
type RawTable struct {
	DBName            string            `json:"dbName" yaml:"dbName"`
	TableName         string            `json:"tableName" yaml:"tableName"`
	Owner             string            `json:"owner,omitempty" yaml:"owner,omitempty"`
	TableType         string            `json:"tableType,omitempty" yaml:"tableType,omitempty"`
	Parameters        map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	StorageDescriptor StorageDescriptor `json:"sd" yaml:"sd"`

	// Format: date-time
	CreateTime strfmt.DateTime `json:"createTime" yaml:"-"`
}

// ExternalTableMetaData is the host engine's view of a catalog table.
type ExternalTableMetaData struct {
	// EntityName is UPPER(db).UPPER(table) for assembled metadata and
	// UPPER(table) for enumerated non-store entries.
	EntityName string
	// SchemaName is the upper-cased database name.
	SchemaName string
	Schema     *StructType
	TableType  string

	StoreHandle        *StoreHandle
	ColumnBatchSize    int
	ColumnMaxDeltaRows int
	// CompressionCodec is empty when the table does not declare one.
	CompressionCodec   string
	BaseTable          string
	DML                string
	DependentRelations []string

	Provider string
	Columns  []ColumnMetadata
}

// StoreHandle carries what the host needs to reach the table's data in the store.
type StoreHandle struct {
	Table      string
	Partitions int
	Schema     *StructType
	Properties map[string]string
}

// ColumnMetadata is a positional description of one column.
type ColumnMetadata struct {
	Name     string
	TypeName string
	// Position is 1-based.
	Position int
	Nullable bool
}
