/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package tablemeta

import (
	"strconv"
	"strings"

	"github.com/suparena/storecatalog/errors"
)

// Well-known parameter keys. Lookups through Params ignore case.
const (
	TableTypeKey          = "TABLETYPE"
	ColumnBatchSizeKey    = "COLUMN_BATCH_SIZE"
	ColumnMaxDeltaRowsKey = "COLUMN_MAX_DELTA_ROWS"
	CompressionCodecKey   = "COMPRESSION"
	IndexedTableKey       = "INDEXED_TABLE"
	DependentRelationsKey = "DEPENDENT_RELATIONS"
	BucketsKey            = "BUCKETS"
	ProviderKey           = "spark.sql.sources.provider"
)

type entry struct {
	key   string
	value string
}

// Params is a case-insensitive parameter map. Values are copied in; Set does
// not write through to the source maps.
type Params struct {
	entries map[string]entry
}

// NewParams builds a Params from primary, filling keys it lacks from each
// fallback in order.
func NewParams(primary map[string]string, fallbacks ...map[string]string) *Params {
	p := &Params{entries: make(map[string]entry, len(primary))}
	for k, v := range primary {
		p.Set(k, v)
	}
	for _, fb := range fallbacks {
		for k, v := range fb {
			if _, ok := p.Get(k); !ok {
				p.Set(k, v)
			}
		}
	}
	return p
}

func fold(key string) string {
	return strings.ToLower(key)
}

// Get returns the value stored under key in any case.
func (p *Params) Get(key string) (string, bool) {
	e, ok := p.entries[fold(key)]
	return e.value, ok
}

// Set stores value under key, replacing any entry that differs only in case.
func (p *Params) Set(key, value string) {
	p.entries[fold(key)] = entry{key: key, value: value}
}

// Map returns a copy keyed by the original key spelling.
func (p *Params) Map() map[string]string {
	m := make(map[string]string, len(p.entries))
	for _, e := range p.entries {
		m[e.key] = e.value
	}
	return m
}

// RequiredInt parses the integer under key. A missing key or an unparseable
// value is a MetadataError for table; the parse error stays reachable.
func (p *Params) RequiredInt(table, key string) (int, error) {
	v, ok := p.Get(key)
	if !ok {
		return 0, errors.NewMissingParameterError(table, key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.NewMalformedParameterError(table, key, err)
	}
	return n, nil
}

// TotalPartitions returns the BUCKETS value. When absent, def is written into
// p and returned, so callers see the effective bucket count in p afterwards.
func TotalPartitions(p *Params, table string, def int) (int, error) {
	if _, ok := p.Get(BucketsKey); !ok {
		p.Set(BucketsKey, strconv.Itoa(def))
		return def, nil
	}
	return p.RequiredInt(table, BucketsKey)
}
