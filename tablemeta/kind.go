/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablemeta

import (
	"strings"

	"github.com/suparena/storecatalog/storagemodels"
)

// Kind is a table's storage kind as recorded under TableTypeKey.
type Kind string

const (
	KindRow      Kind = "ROW"
	KindColumn   Kind = "COLUMN"
	KindIndex    Kind = "INDEX"
	KindSample   Kind = "SAMPLE"
	KindExternal Kind = "EXTERNAL"
	KindStream   Kind = "STREAM"
	KindTopK     Kind = "TOPK"
)

// ParseKind folds a stored kind value. Unknown kinds are kept, upper-cased.
// An empty value is the implicit default kind, ROW.
func ParseKind(s string) Kind {
	s = strings.TrimSpace(s)
	if s == "" {
		return KindRow
	}
	return Kind(strings.ToUpper(s))
}

// IsRow reports the row kind.
func (k Kind) IsRow() bool {
	return k == KindRow
}

// IsStoreManaged reports kinds whose tables the store's data dictionary manages.
func (k Kind) IsStoreManaged() bool {
	return k == KindRow || k == KindColumn || k == KindSample
}

// IsInStore reports kinds whose data lives in the store itself.
func (k Kind) IsInStore() bool {
	return k == KindRow || k == KindColumn || k == KindIndex
}

// KindFromParameters reads TableTypeKey (case-insensitively) from table parameters.
func KindFromParameters(params map[string]string) Kind {
	v, _ := NewParams(params).Get(TableTypeKey)
	return ParseKind(v)
}

// DeclaredKind returns the kind a table declares under TableTypeKey. ok is
// false when the parameter is absent or blank; such a table has no kind and
// belongs to no store kind when enumerating.
func DeclaredKind(params map[string]string) (kind Kind, ok bool) {
	v, _ := NewParams(params).Get(TableTypeKey)
	if strings.TrimSpace(v) == "" {
		return "", false
	}
	return ParseKind(v), true
}

// KindOf classifies a lookup outcome. A table the registry does not hold is
// treated as ROW, the host engine's default kind.
func KindOf(res storagemodels.LookupResult) Kind {
	if !res.IsFound() {
		return KindRow
	}
	return KindFromParameters(res.Table.Parameters)
}
