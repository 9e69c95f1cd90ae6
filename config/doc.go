/*
Package config loads the storecatalog configuration.

Sources, in increasing precedence: built-in defaults, a YAML file, and environment
variables (optionally seeded from a .env file):

	catalog:
	  schemaName: REGISTRY_METASTORE
	  workerName: registry-client-0
	  shutdownGrace: 5s
	  defaultBuckets: 128
	registry:
	  driver: dynamodb
	  dynamodb:
	    region: eu-west-1
	    table: catalog-registry

Environment overrides: CATALOG_DRIVER, CATALOG_DSN, CATALOG_SCHEMA_NAME,
CATALOG_WORKER_NAME, CATALOG_SHUTDOWN_GRACE, CATALOG_DEFAULT_BUCKETS, AWS_ACCESS_KEY,
AWS_SECRET_KEY, AWS_REGION, AWS_DDB_TABLE, AWS_DDB_ENDPOINT.
*/
package config
