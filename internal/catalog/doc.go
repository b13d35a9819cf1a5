// Package catalog implements the business rules of the song catalog on top of the repositories.
//
// A [Catalog] authenticates principals against the users table and remembers every username that
// has authenticated in an injected [Sessions] set. Entries never expire: once a username is in the
// set, [Catalog.IsAuthenticated] accepts it without looking at the password again.
//
// Content is persisted through [TransformContent], a code point reversal that is its own inverse,
// and every artifact carries the [Checksum] of its original content.
//
// The CRUD methods perform no existence or permission checks. Callers in package principal do.
package catalog
