// Package ingest implements the reconciliation pipeline for marketing
// performance exports: format sniffing, header-row discovery, keyword-based
// column resolution across multilingual headers, adset identifier
// normalization, numeric coercion, the outer-join merge of the delivery and
// panel sources, and the derived metric formulas.
//
// The pipeline is batch oriented and synchronous: one call processes one
// (delivery, panel[, extra]) file triple for a single report date. Recoverable
// cell-level problems (missing columns, malformed numbers) degrade to zero
// values and never abort a batch; only an unreadable file does.
package ingest
