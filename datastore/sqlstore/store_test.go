/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"path/filepath"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/storecatalog/config"
	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/registry"
	"github.com/suparena/storecatalog/storagemodels"
)

var _ registry.ReadWriter = (*Store)(nil)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db), mock
}

func TestDatabaseNames(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT name FROM registry_databases ORDER BY name").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("app").AddRow("lake"))

	names, err := store.DatabaseNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "lake"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableNames(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT table_name FROM registry_tables WHERE db_name = \?`).
		WithArgs("app").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	names, err := store.TableNames(context.Background(), "app")
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTable(t *testing.T) {
	columns := []string{"owner", "table_type", "parameters", "storage", "create_time"}

	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT .+ FROM registry_tables WHERE db_name = \? AND table_name = \?`).
			WithArgs("app", "ORDERS").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(
				"etl", "MANAGED_TABLE",
				`{"TABLETYPE":"COLUMN"}`,
				`{"location":"/data/orders","serdeInfo":{"parameters":{"BUCKETS":"8"}}}`,
				"2025-06-15T10:30:00.000Z",
			))

		got, err := store.GetTable(context.Background(), "app", "ORDERS")
		require.NoError(t, err)
		assert.Equal(t, "etl", got.Owner)
		assert.Equal(t, "COLUMN", got.Parameters["TABLETYPE"])
		assert.Equal(t, "/data/orders", got.StorageDescriptor.Location)
		assert.Equal(t, "8", got.StorageDescriptor.SerDeInfo.Parameters["BUCKETS"])
		assert.Equal(t, 2025, time.Time(got.CreateTime).Year())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT .+ FROM registry_tables").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := store.GetTable(context.Background(), "app", "missing")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("transport error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery("SELECT .+ FROM registry_tables").
			WillReturnError(stderrors.New("connection reset"))

		_, err := store.GetTable(context.Background(), "app", "orders")
		require.Error(t, err)
		assert.False(t, errors.IsNotFound(err))
	})
}

func TestDropTable(t *testing.T) {
	t.Run("dropped", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec(`DELETE FROM registry_tables WHERE db_name = \? AND table_name = \?`).
			WithArgs("app", "orders").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, store.DropTable(context.Background(), "app", "orders"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectExec("DELETE FROM registry_tables").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.DropTable(context.Background(), "app", "orders")
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestPutTable(t *testing.T) {
	t.Run("commits database and table", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`INSERT OR IGNORE INTO registry_databases \(name\) VALUES \(\?\)`).
			WithArgs("app").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT OR REPLACE INTO registry_tables`).
			WithArgs("app", "orders", "", "", `{"TABLETYPE":"ROW"}`, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := store.PutTable(context.Background(), storagemodels.RawTable{
			DBName:     "app",
			TableName:  "orders",
			Parameters: map[string]string{"TABLETYPE": "ROW"},
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec("INSERT OR IGNORE INTO registry_databases").
			WillReturnError(stderrors.New("disk full"))
		mock.ExpectRollback()

		err := store.PutTable(context.Background(), storagemodels.RawTable{DBName: "app", TableName: "orders"})
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("requires names", func(t *testing.T) {
		store, _ := newMockStore(t)
		err := store.PutTable(context.Background(), storagemodels.RawTable{DBName: "app"})
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "registry.db")

	client, err := registry.Open(ctx, config.Registry{Driver: DriverName, DSN: dsn})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, client.CreateDatabase(ctx, "empty"))
	require.NoError(t, client.PutTable(ctx, storagemodels.RawTable{
		DBName:     "app",
		TableName:  "ORDERS",
		Parameters: map[string]string{"TABLETYPE": "COLUMN"},
		StorageDescriptor: storagemodels.StorageDescriptor{
			SerDeInfo: storagemodels.SerDeInfo{Parameters: map[string]string{"COMPRESSION": "lz4"}},
		},
	}))

	dbs, err := client.DatabaseNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"app", "empty"}, dbs)

	got, err := client.GetTable(ctx, "app", "ORDERS")
	require.NoError(t, err)
	assert.Equal(t, "COLUMN", got.Parameters["TABLETYPE"])
	assert.Equal(t, "lz4", got.StorageDescriptor.SerDeInfo.Parameters["COMPRESSION"])
	assert.False(t, time.Time(got.CreateTime).IsZero())

	_, err = client.GetTable(ctx, "app", "orders")
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, client.DropTable(ctx, "app", "ORDERS"))
	assert.True(t, errors.IsNotFound(client.DropTable(ctx, "app", "ORDERS")))
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := New(db)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "migrations must be re-runnable")

	version, err := goose.GetDBVersionContext(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, store.PutTable(ctx, storagemodels.RawTable{DBName: "app", TableName: "ORDERS"}))
	names, err := store.TableNames(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, []string{"ORDERS"}, names)
}
