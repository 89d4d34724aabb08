// Package models defines the five replicated entity kinds of the tracker:
// Project, Person, Entry, Commitment, and Reflection.
//
// # Identity
//
// Every entity carries two identifiers: ID is the local primary key (a
// UUID allocated by this store) and ExternalID is the identifier recorded
// from the producing client when the entity arrived via snapshot import.
// ExternalID is the key the import engine resolves identity on.
//
// # Soft Deletion
//
// All five kinds carry a gorm.DeletedAt tombstone. Tombstoned rows are
// excluded from every derived view by GORM's default scope but retained in
// the store for replication consistency. The import engine reads them
// with Unscoped and never resurrects one. The only physical deletes are
// the project ownership cascade and the one-time legacy entry cleanup.
//
// # Open Enums
//
// Enum fields are typed strings with a Normalize defaulting rule: unknown
// values from newer or older clients decode to the neutral default instead
// of failing. EntryKind additionally keeps the deprecated daily_log case
// so historical rows can be recognized (and removed) by the normalizer.
package models
