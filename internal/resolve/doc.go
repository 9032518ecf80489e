// Package resolve drives the end-to-end row resolution pipeline.
//
// A run classifies the table's columns once, applies the exact matcher to
// every cell, resolves the per-roster expected counts (deriving them from
// the table when requested), applies table-wide uniqueness
// disqualification, partitions rows into matched and unmatched, and
// attaches ranked confidence suggestions to the unmatched partition.
//
// The engine is a pure function of (table, rosters, policy): it performs no
// I/O, holds no state between runs, and never mutates its inputs. Row order
// is preserved throughout; uniqueness semantics depend on it.
package resolve
