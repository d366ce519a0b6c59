// Package tabular turns validated JSON record arrays into column-oriented tables.
//
// Records keep the key order of the source document. A table's columns are
// the union of its records' keys in first-seen order, and a key a record
// does not carry is an absent Cell rather than a zero value, so a JSON
// null (present, nil) and a missing member stay distinguishable.
//
// Grouped payloads, such as train positions nested under their route, are
// split with GroupBy into one table per group.
package tabular
