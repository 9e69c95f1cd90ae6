/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storecatalog

import (
	"github.com/google/uuid"
)

// Op identifies a catalog operation.
type Op int

const (
	OpInit Op = iota
	OpIsRowTable
	OpIsColumnTable
	OpColumnTableSchema
	OpAllStoreTables
	OpRemoveTable
	OpHiveTableMetaData
	OpClose
	OpGetTable
	OpNonStoreTables
)

var opNames = [...]string{
	OpInit:              "init",
	OpIsRowTable:        "is-row-table",
	OpIsColumnTable:     "is-column-table",
	OpColumnTableSchema: "column-table-schema",
	OpAllStoreTables:    "all-store-tables",
	OpRemoveTable:       "remove-table",
	OpHiveTableMetaData: "hive-table-metadata",
	OpClose:             "close",
	OpGetTable:          "get-table",
	OpNonStoreTables:    "non-store-tables",
}

func (o Op) String() string {
	if o >= 0 && int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// listing reports operations that enumerate the whole catalog.
func (o Op) listing() bool {
	return o == OpNonStoreTables || o == OpAllStoreTables
}

// Command is one catalog request. A new value is built for every call and is
// not modified after submission.
type Command struct {
	ID        string
	Op        Op
	Table     string
	Schema    string
	SkipLocks bool
}

func newCommand(op Op, schema, table string, skipLocks bool) Command {
	return Command{
		ID:        uuid.NewString(),
		Op:        op,
		Table:     table,
		Schema:    schema,
		SkipLocks: skipLocks,
	}
}
