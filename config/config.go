/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	catalogerrors "github.com/suparena/storecatalog/errors"
)

const (
	DefaultDriver         = "sqlite"
	DefaultDSN            = "file:registry.db?_busy_timeout=5000"
	DefaultSchemaName     = "REGISTRY_METASTORE"
	DefaultWorkerName     = "registry-client-0"
	DefaultShutdownGrace  = 5 * time.Second
	DefaultQueueSize      = 64
	DefaultBuckets        = 128
	DefaultDynamoDBRegion = "us-east-1"
)

// Config is the full library configuration.
type Config struct {
	Catalog  Catalog  `yaml:"catalog"`
	Registry Registry `yaml:"registry"`
}

// Catalog configures the dispatcher and the metadata translator.
type Catalog struct {
	// SchemaName is the schema the host engine reserves for the registry's own tables.
	SchemaName    string        `yaml:"schemaName"`
	WorkerName    string        `yaml:"workerName"`
	ShutdownGrace time.Duration `yaml:"shutdownGrace"`
	QueueSize     int           `yaml:"queueSize"`
	// DefaultBuckets is written into tables that do not declare BUCKETS.
	DefaultBuckets int `yaml:"defaultBuckets"`
}

// Registry selects and parameterizes the registry client driver.
type Registry struct {
	Driver   string   `yaml:"driver"`
	DSN      string   `yaml:"dsn"`
	DynamoDB DynamoDB `yaml:"dynamodb"`
}

// DynamoDB holds the settings of the dynamodb driver.
type DynamoDB struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Table     string `yaml:"table"`
	// Endpoint overrides the service endpoint, e.g. DynamoDB Local.
	Endpoint string `yaml:"endpoint"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.Catalog.SchemaName == "" {
		c.Catalog.SchemaName = DefaultSchemaName
	}
	if c.Catalog.WorkerName == "" {
		c.Catalog.WorkerName = DefaultWorkerName
	}
	if c.Catalog.ShutdownGrace == 0 {
		c.Catalog.ShutdownGrace = DefaultShutdownGrace
	}
	if c.Catalog.QueueSize == 0 {
		c.Catalog.QueueSize = DefaultQueueSize
	}
	if c.Catalog.DefaultBuckets == 0 {
		c.Catalog.DefaultBuckets = DefaultBuckets
	}
	if c.Registry.Driver == "" {
		c.Registry.Driver = DefaultDriver
	}
	if c.Registry.Driver == DefaultDriver && c.Registry.DSN == "" {
		c.Registry.DSN = DefaultDSN
	}
	if c.Registry.DynamoDB.Region == "" {
		c.Registry.DynamoDB.Region = DefaultDynamoDBRegion
	}
}

// Validate checks the configuration for values the catalog cannot run with.
func (c Config) Validate() error {
	if c.Catalog.ShutdownGrace < 0 {
		return catalogerrors.NewValidationError("catalog.shutdownGrace", "must not be negative")
	}
	if c.Catalog.QueueSize < 1 {
		return catalogerrors.NewValidationError("catalog.queueSize", "must be at least 1")
	}
	if c.Catalog.DefaultBuckets < 1 {
		return catalogerrors.NewValidationError("catalog.defaultBuckets", "must be at least 1")
	}
	if c.Registry.Driver == "" {
		return catalogerrors.NewValidationError("registry.driver", "must not be empty")
	}
	if c.Registry.Driver == "dynamodb" && c.Registry.DynamoDB.Table == "" {
		return catalogerrors.NewValidationError("registry.dynamodb.table", "required for the dynamodb driver")
	}
	return nil
}

// Load reads the YAML file at path (skipped when path is empty), overlays the
// environment and applies defaults. A .env file in the working directory is
// loaded first when present.
func Load(path string) (Config, error) {
	var c Config

	if err := LoadEnvFile(); err != nil {
		return c, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := c.ApplyEnv(os.Getenv); err != nil {
		return c, err
	}
	c.ApplyDefaults()

	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// LoadEnvFile loads the given .env files (default ".env") into the process
// environment. Missing files are ignored; existing variables win.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays environment values read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Registry.Driver, "CATALOG_DRIVER")
	setString(&c.Registry.DSN, "CATALOG_DSN")
	setString(&c.Catalog.SchemaName, "CATALOG_SCHEMA_NAME")
	setString(&c.Catalog.WorkerName, "CATALOG_WORKER_NAME")
	setString(&c.Registry.DynamoDB.AccessKey, "AWS_ACCESS_KEY")
	setString(&c.Registry.DynamoDB.SecretKey, "AWS_SECRET_KEY")
	setString(&c.Registry.DynamoDB.Region, "AWS_REGION")
	setString(&c.Registry.DynamoDB.Table, "AWS_DDB_TABLE")
	setString(&c.Registry.DynamoDB.Endpoint, "AWS_DDB_ENDPOINT")

	if v := getenv("CATALOG_SHUTDOWN_GRACE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return catalogerrors.NewValidationError("CATALOG_SHUTDOWN_GRACE", err.Error())
		}
		c.Catalog.ShutdownGrace = d
	}
	if v := getenv("CATALOG_DEFAULT_BUCKETS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return catalogerrors.NewValidationError("CATALOG_DEFAULT_BUCKETS", err.Error())
		}
		c.Catalog.DefaultBuckets = n
	}
	return nil
}
