// Package textutil provides the text canonicalization shared by identity
// normalization, indexing, and confidence scoring.
//
// The comparison form of any value is produced by Fold: surrounding
// whitespace is trimmed and the remainder is Unicode case-folded, so that
// lookups and token comparisons never depend on the casing of the source
// spreadsheet or roster. TokenSet builds bags of unique folded tokens for
// the overlap-based confidence ranking.
package textutil
