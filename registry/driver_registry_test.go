/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storecatalog/config"
	catalogerrors "github.com/suparena/storecatalog/errors"
)

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Registry{Driver: "no-such-driver"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, catalogerrors.ErrUnknownDriver))
}

func TestRegisterDriver(t *testing.T) {
	openErr := errors.New("dial tcp: refused")
	RegisterDriver("test-failing", func(ctx context.Context, cfg config.Registry) (ReadWriter, error) {
		return nil, openErr
	})

	assert.Contains(t, Drivers(), "test-failing")

	_, err := Open(context.Background(), config.Registry{Driver: "test-failing"})
	assert.ErrorIs(t, err, openErr)

	assert.Panics(t, func() {
		RegisterDriver("test-failing", func(ctx context.Context, cfg config.Registry) (ReadWriter, error) {
			return nil, nil
		})
	})
}

func TestIndexMapRegistry(t *testing.T) {
	type keyed struct{ ID string }

	_, ok := GetIndexMap[keyed]()
	assert.False(t, ok)

	RegisterIndexMap[keyed](map[string]string{"PK": "K#{ID}"})
	m, ok := GetIndexMap[keyed]()
	require.True(t, ok)
	assert.Equal(t, "K#{ID}", m["PK"])
}
