/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RetryOptions bounds the retries of a single list query page.
type RetryOptions struct {
	MaxRetries   int
	RetryBackoff time.Duration
	PageSize     int32
}

// DefaultRetryOptions returns the policy used by New.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PageSize:     100,
	}
}

// DatabaseNames returns the database names in key order.
func (s *Store) DatabaseNames(ctx context.Context) ([]string, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	var names []string
	err := s.queryPrefix(ctx, catalogPartition, databasePrefix, func(item map[string]types.AttributeValue) error {
		var db databaseItem
		if err := attributevalue.UnmarshalMap(item, &db); err != nil {
			return fmt.Errorf("failed to unmarshal database item: %w", err)
		}
		names = append(names, db.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// TableNames returns the table names of db in key order.
func (s *Store) TableNames(ctx context.Context, db string) ([]string, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	var names []string
	err := s.queryPrefix(ctx, databasePrefix+db, tablePrefix, func(item map[string]types.AttributeValue) error {
		var name string
		if err := attributevalue.Unmarshal(item["TableName"], &name); err != nil {
			return fmt.Errorf("failed to unmarshal table name: %w", err)
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// queryPrefix pages through the items of partition pk whose sort key starts
// with skPrefix, calling fn for each.
func (s *Store) queryPrefix(ctx context.Context, pk, skPrefix string, fn func(map[string]types.AttributeValue) error) error {
	input := &sdk.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pk},
			":prefix": &types.AttributeValueMemberS{Value: skPrefix},
		},
	}
	if s.retries.PageSize > 0 {
		input.Limit = aws.Int32(s.retries.PageSize)
	}

	for {
		out, err := s.queryWithRetry(ctx, input)
		if err != nil {
			return fmt.Errorf("query error: %w", err)
		}
		for _, item := range out.Items {
			if err := fn(item); err != nil {
				return err
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// queryWithRetry executes one query page, retrying throttling and server errors.
func (s *Store) queryWithRetry(ctx context.Context, input *sdk.QueryInput) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= s.retries.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := s.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < s.retries.MaxRetries {
			backoff := time.Duration(attempt+1) * s.retries.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", s.retries.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var (
		throughput *types.ProvisionedThroughputExceededException
		limit      *types.RequestLimitExceeded
		internal   *types.InternalServerError
	)
	if stderrors.As(err, &throughput) || stderrors.As(err, &limit) || stderrors.As(err, &internal) {
		return true
	}

	var retryable interface{ IsRetryable() bool }
	if stderrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}
