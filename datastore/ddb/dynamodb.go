/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/storecatalog/config"
	"github.com/suparena/storecatalog/errors"
	"github.com/suparena/storecatalog/registry"
	"github.com/suparena/storecatalog/storagemodels"
)

// DriverName is the registry driver name this package registers.
const DriverName = "dynamodb"

const (
	catalogPartition = "CATALOG"
	entityDatabase   = "Database"
	entityTable      = "Table"
	databasePrefix   = "DB#"
	tablePrefix      = "TABLE#"
)

// API is the subset of the DynamoDB client the registry uses.
type API interface {
	GetItem(ctx context.Context, in *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, in *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, in *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// databaseItem is one database of the catalog.
type databaseItem struct {
	Name       string `dynamodbav:"Name"`
	EntityType string `dynamodbav:"EntityType"`
}

// tableItem is one table record. CreateTime is kept as RFC 3339 text.
type tableItem struct {
	DBName            string                          `dynamodbav:"DBName"`
	TableName         string                          `dynamodbav:"TableName"`
	Owner             string                          `dynamodbav:"Owner,omitempty"`
	TableType         string                          `dynamodbav:"TableType,omitempty"`
	Parameters        map[string]string               `dynamodbav:"Parameters,omitempty"`
	StorageDescriptor storagemodels.StorageDescriptor `dynamodbav:"Sd"`
	CreateTime        string                          `dynamodbav:"CreateTime,omitempty"`
	EntityType        string                          `dynamodbav:"EntityType"`
}

func init() {
	registry.RegisterIndexMap[databaseItem](map[string]string{
		"PK": catalogPartition,
		"SK": databasePrefix + "{Name}",
	})
	registry.RegisterIndexMap[tableItem](map[string]string{
		"PK": databasePrefix + "{DBName}",
		"SK": tablePrefix + "{TableName}",
	})
	registry.RegisterDriver(DriverName, func(ctx context.Context, cfg config.Registry) (registry.ReadWriter, error) {
		return Open(ctx, cfg.DynamoDB)
	})
}

// Store is a registry client over a single DynamoDB table.
type Store struct {
	client    API
	tableName string
	closed    atomic.Bool
	retries   RetryOptions
}

// NewClient initializes a DynamoDB client using static AWS credentials when
// given and the default credential chain otherwise.
func NewClient(ctx context.Context, cfg config.DynamoDB) (*sdk.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// New wraps an existing client.
func New(client API, tableName string) *Store {
	return &Store{client: client, tableName: tableName, retries: DefaultRetryOptions()}
}

// Open connects to the registry table named in cfg.
func Open(ctx context.Context, cfg config.DynamoDB) (*Store, error) {
	if cfg.Table == "" {
		return nil, errors.NewValidationError("table", "dynamodb registry table is required")
	}
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return New(client, cfg.Table), nil
}

// WithRetryOptions replaces the retry policy for list queries.
func (s *Store) WithRetryOptions(o RetryOptions) *Store {
	s.retries = o
	return s
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros fills each key template of indexMap with attribute values of item.
func expandMacros(indexMap map[string]string, item any) (map[string]string, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key input: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for field, template := range indexMap {
		res[field] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			switch tv := av[strings.Trim(macro, "{}")].(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			default:
				return ""
			}
		})
	}
	return res, nil
}

// keyFor builds the primary key of item from the key templates of T.
func keyFor[T any](item T) (map[string]types.AttributeValue, error) {
	indexMap, ok := registry.GetIndexMap[T]()
	if !ok {
		return nil, fmt.Errorf("no index map registered for %T", item)
	}
	expanded, err := expandMacros(indexMap, item)
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expanded)
}

// buildKeyFromExpanded requires non-empty "PK" and "SK" values.
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]
	if !okPK || !okSK || pk == "" || sk == "" || strings.HasSuffix(sk, "#") {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// marshalWithKeys marshals item and adds its expanded key attributes.
func marshalWithKeys[T any](item T) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}
	key, err := keyFor(item)
	if err != nil {
		return nil, err
	}
	for k, v := range key {
		av[k] = v
	}
	return av, nil
}

func (s *Store) checkOpen() error {
	if s.closed.Load() {
		return errors.ErrClientClosed
	}
	return nil
}

// GetTable retrieves a table record by exact name.
func (s *Store) GetTable(ctx context.Context, db, name string) (*storagemodels.RawTable, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	key, err := keyFor(tableItem{DBName: db, TableName: name})
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &s.tableName,
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError("table", db+"."+name)
	}

	var item tableItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return item.toRawTable(), nil
}

// DropTable removes a table record by exact name.
func (s *Store) DropTable(ctx context.Context, db, name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	key, err := keyFor(tableItem{DBName: db, TableName: name})
	if err != nil {
		return err
	}

	_, err = s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           &s.tableName,
		Key:                 key,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewNotFoundError("table", db+"."+name)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

// CreateDatabase adds a database entry. Creating an existing database is a no-op.
func (s *Store) CreateDatabase(ctx context.Context, name string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	av, err := marshalWithKeys(databaseItem{Name: name, EntityType: entityDatabase})
	if err != nil {
		return err
	}
	if _, err := s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	}); err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// PutTable stores a table record, creating its database if needed.
func (s *Store) PutTable(ctx context.Context, t storagemodels.RawTable) error {
	if t.DBName == "" || t.TableName == "" {
		return errors.NewValidationError("table", "database and table name are required")
	}
	if err := s.CreateDatabase(ctx, t.DBName); err != nil {
		return err
	}

	av, err := marshalWithKeys(newTableItem(t))
	if err != nil {
		return err
	}
	if _, err := s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &s.tableName,
		Item:      av,
	}); err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Close marks the client closed. The SDK client holds no resources to release.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

func newTableItem(t storagemodels.RawTable) tableItem {
	created := time.Time(t.CreateTime)
	if created.IsZero() {
		created = time.Now().UTC()
	}
	return tableItem{
		DBName:            t.DBName,
		TableName:         t.TableName,
		Owner:             t.Owner,
		TableType:         t.TableType,
		Parameters:        t.Parameters,
		StorageDescriptor: t.StorageDescriptor,
		CreateTime:        strfmt.DateTime(created).String(),
		EntityType:        entityTable,
	}
}

func (it tableItem) toRawTable() *storagemodels.RawTable {
	t := &storagemodels.RawTable{
		DBName:            it.DBName,
		TableName:         it.TableName,
		Owner:             it.Owner,
		TableType:         it.TableType,
		Parameters:        it.Parameters,
		StorageDescriptor: it.StorageDescriptor,
	}
	if it.CreateTime != "" {
		if ts, err := strfmt.ParseDateTime(it.CreateTime); err == nil {
			t.CreateTime = ts
		}
	}
	return t
}
