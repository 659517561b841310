// Package domain contains the core entity types stored in the backing
// spreadsheet and the error kinds shared across the service.
//
// The spreadsheet is the data of record: every entity maps to one tab with
// a header row and a key column. Nothing in this package performs I/O.
package domain
