/*
Package ddb is a registry client backed by a single DynamoDB table.

Importing the package registers the "dynamodb" driver with the registry package.

Records follow a single-table design. Keys are derived from key templates
registered with registry.RegisterIndexMap and expanded from the record's own
attributes:

	databases: PK "CATALOG",       SK "DB#{Name}"
	tables:    PK "DB#{DBName}",   SK "TABLE#{TableName}"

Listing queries page with LastEvaluatedKey and retry throttling errors with
linear backoff (see RetryOptions). DropTable is conditional on the item
existing, so dropping an absent table reports errors.ErrNotFound.
*/
package ddb
