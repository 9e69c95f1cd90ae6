//go:build integration

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storecatalog/config"
	"github.com/suparena/storecatalog/storagemodels"
)

func getIntegrationStore(t *testing.T) *Store {
	t.Helper()
	if err := godotenv.Load(); err != nil {
		t.Log("No .env file found, proceeding with environment variables")
	}

	cfg := config.DynamoDB{
		Region:    os.Getenv("AWS_REGION"),
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Table:     os.Getenv("AWS_DDB_TABLE"),
		Endpoint:  os.Getenv("AWS_DDB_ENDPOINT"),
	}
	if cfg.Table == "" {
		t.Skip("AWS_DDB_TABLE not set")
	}

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	return store
}

func TestIntegrationPutGetDrop(t *testing.T) {
	ctx := context.Background()
	store := getIntegrationStore(t)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.PutTable(ctx, storagemodels.RawTable{
		DBName:     "integration",
		TableName:  "ORDERS",
		Parameters: map[string]string{"TABLETYPE": "ROW"},
	}))

	got, err := store.GetTable(ctx, "integration", "ORDERS")
	require.NoError(t, err)
	t.Logf("Table: %+v", got)

	names, err := store.TableNames(ctx, "integration")
	require.NoError(t, err)
	require.Contains(t, names, "ORDERS")

	require.NoError(t, store.DropTable(ctx, "integration", "ORDERS"))
}
