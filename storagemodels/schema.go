/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"bytes"
	"encoding/json"
)

// StructType is a table schema in the engine's JSON struct encoding:
//
//	{"type":"struct","fields":[{"name":"id","type":"integer","nullable":false,"metadata":{}}]}
type StructType struct {
	Type   string        `json:"type"`
	Fields []StructField `json:"fields"`
}

// StructField is one column of a StructType. Type is kept raw because nested
// types (struct, array, map) are JSON objects rather than strings.
type StructField struct {
	Name     string          `json:"name"`
	Type     json.RawMessage `json:"type"`
	Nullable bool            `json:"nullable"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// TypeName returns the simple type name, or the "type" member of a nested type.
func (f StructField) TypeName() string {
	raw := bytes.TrimSpace(f.Type)
	if len(raw) == 0 {
		return ""
	}
	var name string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &name); err == nil {
			return name
		}
		return ""
	}
	var nested struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &nested); err != nil {
		return ""
	}
	return nested.Type
}
