/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStructFieldTypeName(t *testing.T) {
	var st StructType
	text := `{"type":"struct","fields":[
		{"name":"a","type":"integer","nullable":false},
		{"name":"b","type":{"type":"map","keyType":"string","valueType":"long","valueContainsNull":true},"nullable":true},
		{"name":"c","nullable":true}]}`
	if err := json.Unmarshal([]byte(text), &st); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"integer", "map", ""}
	for i, f := range st.Fields {
		if got := f.TypeName(); got != want[i] {
			t.Errorf("field %s: expected type %q, got %q", f.Name, want[i], got)
		}
	}
}

func TestLookupResult(t *testing.T) {
	tbl := &RawTable{DBName: "app", TableName: "t"}

	if !Found(tbl).IsFound() {
		t.Error("Found should report found")
	}
	if Found(nil).IsFound() {
		t.Error("Found(nil) must not report found")
	}
	if NotFound().IsFound() || NotFound().Status.String() != "not-found" {
		t.Error("unexpected NotFound")
	}

	res := Failed(errors.New("boom"))
	if res.IsFound() || res.Status != LookupFailed || res.Err == nil {
		t.Errorf("unexpected Failed result: %+v", res)
	}
}
