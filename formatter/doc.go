// Package formatter renders tables for the command line.
//
// This package is organized into:
// - render.go: format selection and cell rendering
// - json.go: JSON serialization keeping column order
// - text.go: aligned plain-text tables
// - csv.go: CSV with a header row
// - pretty.go: Go-syntax dump for debugging
//
// Absent cells render as empty text (or are skipped in JSON); JSON null
// renders as "null".
package formatter
