// Package importer is the snapshot import and reconciliation engine.
//
// A snapshot is a JSON export produced by one client (mobile, desktop, or
// web); importing merges it into an already-populated local store without
// creating duplicates, without breaking cross-entity references, and
// without corrupting store state if the merge fails partway.
//
// # Pipeline
//
// The import is one logical operation with four phases, each completing
// before the next begins:
//
//  1. ParseSnapshot — raw text to a typed, versioned Snapshot. Rejects
//     invalid JSON, a missing schema version, or an unsupported version
//     before any store access.
//  2. Resolve — maps each snapshot entity to an existing local entity
//     (update) or marks it new (create), by external id first and content
//     fingerprint as the legacy fallback. Pure; ambiguity becomes a
//     create plus a warning, never a guess.
//  3. Order — applies the fixed commit order (projects and people, then
//     entries, then commitments and reflections) and skips entities with
//     unresolvable non-null references, cascading the skip forward.
//  4. Execute — applies the plan in one transaction, allocating local
//     ids, filling the translation table, and rewriting foreign keys
//     through it. Any storage failure rolls everything back.
//
// Only parse and storage failures are terminal. Per-entity problems
// (missing required fields, dangling references, tombstoned targets)
// surface as skips with warnings in the Report.
//
// # Legacy Cleanup
//
// CleanupLegacyEntries is a separate startup pass that hard-deletes
// entries stored under the deprecated daily-log shape. It is independent
// of import and converges: a second run removes zero rows.
//
// # Export
//
// BuildSnapshot and MarshalSnapshot produce the wire format this engine
// consumes; FetchArchive and StoreArchive move payloads through the
// snapshot archive bucket.
package importer
