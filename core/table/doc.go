// Package table provides the immutable, token-indexed record table that backs
// every entity kind of a dataset snapshot.
//
// A Table keeps its records in source order and a hash index from token to
// position. Lookups are O(1), scans are restartable and order preserving, and
// there is no mutation API once the table is built, so a Table can be shared
// by any number of readers without synchronization.
//
// Duplicate tokens are not rejected: the later row wins in the index and the
// collision is counted (see Table.Duplicates).
package table
