// Package services implements the business logic layer between the HTTP
// transport and the ingestion pipeline. IngestService runs one reconciliation
// batch end to end; LedgerService exposes the persisted ledger to read-side
// consumers. Services accept a context on every operation and return typed
// errors from the internal/errors taxonomy.
package services
