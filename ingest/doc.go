// Package ingest parses DEGIRO-style CSV exports into the raw transaction
// and cash-activity records the ledger engine consumes. It handles the
// broker's locale number formats and classifies instruments once, here,
// so the engine never has to look at a product name again.
package ingest
