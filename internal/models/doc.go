// Package models defines domain entities and persistence interfaces for the tunevault song catalog.
//
// Persistent entities:
//   - [Artifact] : A song record whose content is stored transformed, with a checksum of the original
//   - [User] : An account allowed to act on the catalog
//
// Entities implement [Model]; [Artifact] also implements [Timestamped].
// The [Repository] interface defines the standard CRUD operations for database access.
package models
