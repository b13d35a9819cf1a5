// Package repositories implements SQLite persistence for the song catalog.
//
// [Store] owns the connection and exposes three primitives: [Store.Exec] for mutating statements,
// [Store.FetchOne] for the first matching row (nil when nothing matches) and [Store.FetchAll] for every row.
// Connection, lock and timeout failures wrap [shared.ErrStorageUnavailable] and are never retried.
//
// Key Implementations:
//   - [ArtifactRepository] : Artifact persistence keyed by an explicit integer id
//   - [UserRepository] : Credential lookups and the seeded default account
package repositories
