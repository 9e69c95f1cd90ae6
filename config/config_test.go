/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogerrors "github.com/suparena/storecatalog/errors"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, DefaultDriver, c.Registry.Driver)
	assert.Equal(t, DefaultDSN, c.Registry.DSN)
	assert.Equal(t, DefaultSchemaName, c.Catalog.SchemaName)
	assert.Equal(t, 5*time.Second, c.Catalog.ShutdownGrace)
	assert.Equal(t, DefaultBuckets, c.Catalog.DefaultBuckets)
	require.NoError(t, c.Validate())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  workerName: hms-client
  shutdownGrace: 2s
  defaultBuckets: 16
registry:
  driver: dynamodb
  dynamodb:
    region: eu-west-1
    table: catalog-registry
`), 0o600))

	chdir(t, dir)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "hms-client", c.Catalog.WorkerName)
	assert.Equal(t, 2*time.Second, c.Catalog.ShutdownGrace)
	assert.Equal(t, 16, c.Catalog.DefaultBuckets)
	assert.Equal(t, "dynamodb", c.Registry.Driver)
	assert.Equal(t, "catalog-registry", c.Registry.DynamoDB.Table)
	assert.Empty(t, c.Registry.DSN, "sqlite DSN default only applies to the sqlite driver")
}

func TestLoadEnvFileOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("CATALOG_DRIVER=dynamodb\nAWS_DDB_TABLE=from-dotenv\n"), 0o600))

	chdir(t, dir)
	t.Setenv("CATALOG_DRIVER", "")
	t.Setenv("AWS_DDB_TABLE", "")
	os.Unsetenv("CATALOG_DRIVER")
	os.Unsetenv("AWS_DDB_TABLE")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dynamodb", c.Registry.Driver)
	assert.Equal(t, "from-dotenv", c.Registry.DynamoDB.Table)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"CATALOG_SHUTDOWN_GRACE":  "750ms",
		"CATALOG_DEFAULT_BUCKETS": "8",
		"AWS_REGION":              "ap-south-1",
	}
	var c Config
	require.NoError(t, c.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, 750*time.Millisecond, c.Catalog.ShutdownGrace)
	assert.Equal(t, 8, c.Catalog.DefaultBuckets)
	assert.Equal(t, "ap-south-1", c.Registry.DynamoDB.Region)

	env["CATALOG_DEFAULT_BUCKETS"] = "many"
	err := c.ApplyEnv(func(k string) string { return env[k] })
	assert.True(t, catalogerrors.IsValidationError(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative grace", func(c *Config) { c.Catalog.ShutdownGrace = -time.Second }},
		{"empty queue", func(c *Config) { c.Catalog.QueueSize = 0 }},
		{"no buckets", func(c *Config) { c.Catalog.DefaultBuckets = 0 }},
		{"dynamodb without table", func(c *Config) { c.Registry.Driver = "dynamodb" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.True(t, catalogerrors.IsValidationError(c.Validate()))
		})
	}
}
