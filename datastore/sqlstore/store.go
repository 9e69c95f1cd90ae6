/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-openapi/strfmt"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 database/sql driver
	"github.com/pressly/goose/v3"

	"github.com/suparena/storecatalog/config"
	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/registry"
	"github.com/suparena/storecatalog/storagemodels"
)

// DriverName is the registry driver name this package registers.
const DriverName = "sqlite"

const (
	databasesTable = "registry_databases"
	tablesTable    = "registry_tables"
)

// ssq is the statement builder with question-mark placeholders.
var ssq = sq.StatementBuilder.PlaceholderFormat(sq.Question)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func init() {
	registry.RegisterDriver(DriverName, func(ctx context.Context, cfg config.Registry) (registry.ReadWriter, error) {
		return Open(ctx, cfg.DSN)
	})
}

// Store is a registry client over a SQL database.
type Store struct {
	db *sql.DB
}

// New wraps an open database. The schema is not created; see Migrate.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens the sqlite database at dsn and creates the registry schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach registry database: %w", err)
	}
	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate applies pending goose migrations to the registry database.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to migrate registry schema: %w", err)
	}
	return nil
}

// DatabaseNames returns the database names in sorted order.
func (s *Store) DatabaseNames(ctx context.Context) ([]string, error) {
	query, args, err := ssq.Select("name").From(databasesTable).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.queryNames(ctx, query, args...)
}

// TableNames returns the table names of db in sorted order.
func (s *Store) TableNames(ctx context.Context, db string) ([]string, error) {
	query, args, err := ssq.Select("table_name").
		From(tablesTable).
		Where(sq.Eq{"db_name": db}).
		OrderBy("table_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return s.queryNames(ctx, query, args...)
}

func (s *Store) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate names: %w", err)
	}
	return names, nil
}

// GetTable retrieves a table record by exact name.
func (s *Store) GetTable(ctx context.Context, db, name string) (*storagemodels.RawTable, error) {
	query, args, err := ssq.Select("owner", "table_type", "parameters", "storage", "create_time").
		From(tablesTable).
		Where(sq.Eq{"db_name": db, "table_name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	t := storagemodels.RawTable{DBName: db, TableName: name}
	var params, storage, created string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&t.Owner, &t.TableType, &params, &storage, &created)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("table", db+"."+name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s.%s: %w", db, name, err)
	}

	if err := json.Unmarshal([]byte(params), &t.Parameters); err != nil {
		return nil, fmt.Errorf("failed to decode parameters of %s.%s: %w", db, name, err)
	}
	if err := json.Unmarshal([]byte(storage), &t.StorageDescriptor); err != nil {
		return nil, fmt.Errorf("failed to decode storage descriptor of %s.%s: %w", db, name, err)
	}
	if created != "" {
		if ts, err := strfmt.ParseDateTime(created); err == nil {
			t.CreateTime = ts
		}
	}
	return &t, nil
}

// DropTable removes a table record by exact name.
func (s *Store) DropTable(ctx context.Context, db, name string) error {
	query, args, err := ssq.Delete(tablesTable).
		Where(sq.Eq{"db_name": db, "table_name": name}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to drop table %s.%s: %w", db, name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to drop table %s.%s: %w", db, name, err)
	}
	if n == 0 {
		return errors.NewNotFoundError("table", db+"."+name)
	}
	return nil
}

// CreateDatabase adds an empty database if it does not exist.
func (s *Store) CreateDatabase(ctx context.Context, name string) error {
	return createDatabase(ctx, s.db, name)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func createDatabase(ctx context.Context, ex execer, name string) error {
	query, args, err := ssq.Insert(databasesTable).
		Options("OR IGNORE").
		Columns("name").
		Values(name).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create database %s: %w", name, err)
	}
	return nil
}

// PutTable stores a table record, replacing any record with the same name
// and creating its database if needed.
func (s *Store) PutTable(ctx context.Context, t storagemodels.RawTable) error {
	if t.DBName == "" || t.TableName == "" {
		return errors.NewValidationError("table", "database and table name are required")
	}
	params := t.Parameters
	if params == nil {
		params = map[string]string{}
	}
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode parameters: %w", err)
	}
	storageJSON, err := json.Marshal(t.StorageDescriptor)
	if err != nil {
		return fmt.Errorf("failed to encode storage descriptor: %w", err)
	}
	if time.Time(t.CreateTime).IsZero() {
		t.CreateTime = strfmt.DateTime(time.Now().UTC())
	}

	query, args, err := ssq.Insert(tablesTable).
		Options("OR REPLACE").
		Columns("db_name", "table_name", "owner", "table_type", "parameters", "storage", "create_time").
		Values(t.DBName, t.TableName, t.Owner, t.TableType, string(paramsJSON), string(storageJSON), t.CreateTime.String()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := createDatabase(ctx, tx, t.DBName); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to put table %s.%s: %w", t.DBName, t.TableName, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s.%s: %w", t.DBName, t.TableName, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
