// Package ledger persists reconciled campaign records across report dates.
//
// The backing store is a single CSV file (UTF-8 with BOM, header row) that
// behaves append-only: the only write operation adds a whole ingestion batch,
// and no row is ever altered or removed. Appending rewrites the file through
// a temp-file rename, so a failed write leaves the previous contents intact.
// A mutex serializes writers and snapshots readers, so a query observes the
// store either before or after any given append, never mid-write.
package ledger
