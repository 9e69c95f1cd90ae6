/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when the registry holds no such object
	ErrNotFound = errors.New("object not found")

	// ErrTableNotFound is the domain error for a table that could not be resolved
	ErrTableNotFound = errors.New("table not found")

	// ErrMalformedMetadata is returned when a stored table entry is missing or corrupts a required parameter
	ErrMalformedMetadata = errors.New("malformed table metadata")

	// ErrDispatcherStopped is returned for work submitted after shutdown
	ErrDispatcherStopped = errors.New("dispatcher stopped")

	// ErrInitFailed is returned when the worker could not open its registry client
	ErrInitFailed = errors.New("registry client initialization failed")

	// ErrClientClosed is returned when a command runs after the registry client was closed
	ErrClientClosed = errors.New("registry client closed")

	// ErrUnknownDriver is returned when no registry driver is registered under a name
	ErrUnknownDriver = errors.New("unknown registry driver")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// NotFoundError represents an object the registry does not hold
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// TableNotFoundError is raised when a table lookup fails because the registry
// could not be reached or answered with a protocol error.
type TableNotFoundError struct {
	Schema string
	Table  string
	Cause  error
}

func (e *TableNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("table %s.%s not found: %v", e.Schema, e.Table, e.Cause)
	}
	return fmt.Sprintf("table %s.%s not found", e.Schema, e.Table)
}

func (e *TableNotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}

func (e *TableNotFoundError) Unwrap() error {
	return e.Cause
}

// MetadataError reports a required table parameter that is missing or unparseable.
type MetadataError struct {
	Table string
	Key   string
	Err   error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("table %s: parameter %s: %v", e.Table, e.Key, e.Err)
	}
	return fmt.Sprintf("table %s: required parameter %s is missing", e.Table, e.Key)
}

func (e *MetadataError) Is(target error) bool {
	return target == ErrMalformedMetadata
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}

// CommandError wraps any failure raised while the worker executed a command.
type CommandError struct {
	Op  string
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("catalog command %s failed: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// InitError wraps the failure of the worker's initial client open.
type InitError struct {
	Worker string
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("worker %s: %v: %v", e.Worker, ErrInitFailed, e.Err)
}

func (e *InitError) Is(target error) bool {
	return target == ErrInitFailed
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(objectType, key string) error {
	return &NotFoundError{Type: objectType, Key: key}
}

// NewTableNotFoundError creates a new TableNotFoundError carrying the registry cause
func NewTableNotFoundError(schema, table string, cause error) error {
	return &TableNotFoundError{Schema: schema, Table: table, Cause: cause}
}

// NewMissingParameterError reports a required parameter absent from a table entry
func NewMissingParameterError(table, key string) error {
	return &MetadataError{Table: table, Key: key}
}

// NewMalformedParameterError reports a required parameter that failed to parse
func NewMalformedParameterError(table, key string, err error) error {
	return &MetadataError{Table: table, Key: key, Err: err}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsNotFound checks if an error is a registry not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTableNotFound checks if an error is a domain table not found error
func IsTableNotFound(err error) bool {
	return errors.Is(err, ErrTableNotFound)
}

// IsMalformedMetadata checks if an error reports a corrupt catalog entry
func IsMalformedMetadata(err error) bool {
	return errors.Is(err, ErrMalformedMetadata)
}

// IsStopped checks if an error was caused by a stopped dispatcher
func IsStopped(err error) bool {
	return errors.Is(err, ErrDispatcherStopped)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
