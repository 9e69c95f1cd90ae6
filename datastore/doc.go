/*
Package datastore holds the registry client backends.

Each backend implements registry.ReadWriter and registers itself as a driver
when imported:

  - sqlstore: SQL tables over sqlite ("sqlite")
  - ddb: DynamoDB single-table design ("dynamodb")
  - mock: in-memory registry for tests, with error injection and confinement checks
*/
package datastore
