/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablemeta

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/storagemodels"
)

// Schema parameter keys. Large schemas are split into numbered parts.
const (
	SchemaKey         = "spark.sql.sources.schema"
	SchemaNumPartsKey = "spark.sql.sources.schema.numParts"
	SchemaPartPrefix  = "spark.sql.sources.schema.part."
)

// SchemaJSON returns the serialized schema stored in table parameters, joining
// numbered parts when present. ok is false when no schema is stored.
func SchemaJSON(table string, params map[string]string) (text string, ok bool, err error) {
	p := NewParams(params)

	if v, found := p.Get(SchemaNumPartsKey); found {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return "", false, errors.NewMalformedParameterError(table, SchemaNumPartsKey, err)
		}
		var b strings.Builder
		for i := 0; i < n; i++ {
			key := SchemaPartPrefix + strconv.Itoa(i)
			part, found := p.Get(key)
			if !found {
				return "", false, errors.NewMissingParameterError(table, key)
			}
			b.WriteString(part)
		}
		return b.String(), true, nil
	}

	if v, found := p.Get(SchemaKey); found {
		return v, true, nil
	}
	return "", false, nil
}

// ParseSchema decodes a serialized struct schema.
func ParseSchema(text string) (*storagemodels.StructType, error) {
	var st storagemodels.StructType
	if err := json.Unmarshal([]byte(text), &st); err != nil {
		return nil, fmt.Errorf("failed to parse table schema: %w", err)
	}
	if st.Type != "struct" {
		return nil, fmt.Errorf("failed to parse table schema: top-level type is %q, want \"struct\"", st.Type)
	}
	return &st, nil
}

// TableSchema reads and parses the schema of a table. ok is false when the
// table stores no schema; a stored but unparseable schema is a MetadataError.
func TableSchema(table string, params map[string]string) (*storagemodels.StructType, bool, error) {
	text, ok, err := SchemaJSON(table, params)
	if err != nil || !ok {
		return nil, ok, err
	}
	st, err := ParseSchema(text)
	if err != nil {
		return nil, true, errors.NewMalformedParameterError(table, SchemaKey, err)
	}
	return st, true, nil
}

// ColumnMetadata lists the schema's columns with 1-based positions.
func ColumnMetadata(st *storagemodels.StructType) []storagemodels.ColumnMetadata {
	if st == nil {
		return nil
	}
	cols := make([]storagemodels.ColumnMetadata, len(st.Fields))
	for i, f := range st.Fields {
		cols[i] = storagemodels.ColumnMetadata{
			Name:     f.Name,
			TypeName: f.TypeName(),
			Position: i + 1,
			Nullable: f.Nullable,
		}
	}
	return cols
}
