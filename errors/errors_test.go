/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("table", "app.orders")

	expected := `table "app.orders" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestTableNotFoundError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTableNotFoundError("app", "orders", cause)

	expected := "table app.orders not found: connection refused"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsTableNotFound(err) {
		t.Error("IsTableNotFound should return true for TableNotFoundError")
	}

	if !errors.Is(err, cause) {
		t.Error("TableNotFoundError should unwrap to its cause")
	}

	if IsNotFound(err) {
		t.Error("TableNotFoundError must not be confused with a registry not found")
	}

	bare := NewTableNotFoundError("app", "orders", nil)
	if bare.Error() != "table app.orders not found" {
		t.Errorf("unexpected message without cause: %q", bare.Error())
	}
}

func TestMetadataError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "missing",
			err:      NewMissingParameterError("APP.ORDERS", "COLUMN_BATCH_SIZE"),
			expected: "table APP.ORDERS: required parameter COLUMN_BATCH_SIZE is missing",
		},
		{
			name:     "malformed",
			err:      NewMalformedParameterError("APP.ORDERS", "COLUMN_BATCH_SIZE", errors.New("bad digit")),
			expected: "table APP.ORDERS: parameter COLUMN_BATCH_SIZE: bad digit",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, tt.err.Error())
			}
			if !IsMalformedMetadata(tt.err) {
				t.Error("MetadataError should match ErrMalformedMetadata")
			}
		})
	}
}

func TestMetadataErrorKeepsParseCause(t *testing.T) {
	_, parseErr := strconv.Atoi("ten")
	err := fmt.Errorf("assemble: %w", NewMalformedParameterError("T", "COLUMN_MAX_DELTA_ROWS", parseErr))

	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Fatal("parse error should stay reachable through errors.As")
	}
	if numErr.Num != "ten" {
		t.Errorf("unexpected parse input %q", numErr.Num)
	}
}

func TestCommandAndInitErrors(t *testing.T) {
	inner := NewTableNotFoundError("app", "orders", nil)
	cmdErr := &CommandError{Op: "GET_TABLE", Err: inner}
	if !IsTableNotFound(cmdErr) {
		t.Error("CommandError should unwrap to the command failure")
	}

	initErr := &InitError{Worker: "registry-client-0", Err: errors.New("dial failed")}
	if !errors.Is(initErr, ErrInitFailed) {
		t.Error("InitError should match ErrInitFailed")
	}
	if initErr.Error() != "worker registry-client-0: registry client initialization failed: dial failed" {
		t.Errorf("unexpected init error message %q", initErr.Error())
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("driver", "must not be empty")
	if err.Error() != `validation failed for field "driver": must not be empty` {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError should return true for ValidationError")
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrTableNotFound,
		ErrMalformedMetadata,
		ErrDispatcherStopped,
		ErrInitFailed,
		ErrClientClosed,
		ErrUnknownDriver,
		ErrInvalidInput,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
