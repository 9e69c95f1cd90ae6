/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
databases: [empty]
tables:
  - dbName: app
    tableName: ORDERS
    parameters:
      TABLETYPE: COLUMN
      COLUMN_BATCH_SIZE: "1000"
      COLUMN_MAX_DELTA_ROWS: "10"
      spark.sql.sources.schema: '{"type":"struct","fields":[{"name":"id","type":"long","nullable":false,"metadata":{}}]}'
  - dbName: app
    tableName: CUSTOMERS
    parameters:
      TABLETYPE: ROW
  - dbName: lake
    tableName: EVENTS
    parameters:
      TABLETYPE: EXTERNAL
      spark.sql.sources.provider: parquet
`

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func seededDSN(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)

	seedPath := filepath.Join(dir, "seed.yaml")
	require.NoError(t, os.WriteFile(seedPath, []byte(seedYAML), 0o600))

	dsn := "file:" + filepath.Join(dir, "registry.db")
	out, errOut, code := run(t, "seed", seedPath, "--driver", "sqlite", "--dsn", dsn)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "seeded 1 databases and 3 tables")
	return dsn
}

func TestCatalogctl(t *testing.T) {
	dsn := seededDSN(t)
	flags := []string{"--driver", "sqlite", "--dsn", dsn}

	t.Run("tables", func(t *testing.T) {
		out, errOut, code := run(t, append([]string{"tables", "-o", "json"}, flags...)...)
		require.Equal(t, 0, code, errOut)

		var all map[string][]string
		require.NoError(t, json.Unmarshal([]byte(out), &all))
		assert.Equal(t, []string{"CUSTOMERS", "ORDERS"}, all["APP"])
		assert.Empty(t, all["EMPTY"])
	})

	t.Run("describe", func(t *testing.T) {
		out, errOut, code := run(t, append([]string{"describe", "app", "orders"}, flags...)...)
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, "APP.ORDERS")
		assert.Contains(t, out, "Batch size:       1000")
		assert.Contains(t, out, "INSERT INTO APP.ORDERS VALUES (?)")
	})

	t.Run("kind", func(t *testing.T) {
		out, errOut, code := run(t, append([]string{"kind", "app", "customers"}, flags...)...)
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, "kind: row")
	})

	t.Run("external", func(t *testing.T) {
		out, errOut, code := run(t, append([]string{"external"}, flags...)...)
		require.Equal(t, 0, code, errOut)
		assert.Contains(t, out, "EVENTS")
		assert.Contains(t, out, "parquet")
	})

	t.Run("drop", func(t *testing.T) {
		out, _, code := run(t, append([]string{"drop", "app", "CUSTOMERS"}, flags...)...)
		require.Equal(t, 0, code)
		assert.Contains(t, out, "dropped app.CUSTOMERS")

		out, _, code = run(t, append([]string{"drop", "app", "CUSTOMERS"}, flags...)...)
		require.Equal(t, 0, code)
		assert.Contains(t, out, "did not exist")
	})

	t.Run("missing table", func(t *testing.T) {
		_, errOut, code := run(t, append([]string{"get", "app", "nope"}, flags...)...)
		assert.Equal(t, 1, code)
		assert.Contains(t, errOut, "not found")
	})
}

func TestVersion(t *testing.T) {
	out, _, code := run(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "catalogctl version")
}

func TestUnknownDriver(t *testing.T) {
	chdir(t, t.TempDir())
	_, errOut, code := run(t, "tables", "--driver", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown registry driver")
}
