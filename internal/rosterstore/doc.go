// Package rosterstore persists the two reference rosters in a local SQLite
// database.
//
// The store is the boundary collaborator that supplies identities to the
// matching engine: the CLI imports roster CSVs into it and reads plain
// record slices back out. The engine itself never touches the store.
// Imports replace a role's roster wholesale under a file lock, tagged with
// a batch id so an import can be traced in the data.
package rosterstore
