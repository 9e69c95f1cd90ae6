/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

// LookupStatus tags the outcome of a registry lookup.
type LookupStatus int

const (
	LookupNotFound LookupStatus = iota
	LookupFound
	LookupFailed
)

func (s LookupStatus) String() string {
	switch s {
	case LookupFound:
		return "found"
	case LookupFailed:
		return "failed"
	default:
		return "not-found"
	}
}

// LookupResult is Found(Table) | NotFound | Failed(Err).
type LookupResult struct {
	Status LookupStatus
	Table  *RawTable
	Err    error
}

// Found wraps a located record.
func Found(t *RawTable) LookupResult {
	return LookupResult{Status: LookupFound, Table: t}
}

// NotFound reports an absent record.
func NotFound() LookupResult {
	return LookupResult{Status: LookupNotFound}
}

// Failed reports a lookup that could not be answered.
func Failed(err error) LookupResult {
	return LookupResult{Status: LookupFailed, Err: err}
}

func (r LookupResult) IsFound() bool {
	return r.Status == LookupFound && r.Table != nil
}
