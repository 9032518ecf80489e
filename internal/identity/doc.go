// Package identity defines the canonical identity schema shared by the
// matching engine and the roster store.
//
// A Record is one member of a roster: a stable identifier plus a fixed,
// ordered set of descriptive string fields. Rosters come in exactly two
// roles (primary and secondary); the engine matches table rows against one
// roster per role.
//
// Normalize converts raw records into their folded comparison form and
// elides fields that are roster-wide duplicates of an earlier field, so a
// redundant copy of a column never consumes classifier confidence.
package identity
