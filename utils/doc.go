// Package utils provides small shared helpers for the CTA train tracker client.
//
// It contains:
//   - Query timestamp parsing and conversion
//   - Logging initialization
package utils
