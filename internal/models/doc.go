// Package models defines the domain entities of the tunebox player.
//
// The package contains two categories of types:
//
// 1. Stored values: JSON documents kept in the key-value store
//   - [User] : A directory entry (username and plaintext password)
//   - [Session] : The persisted "current user" record
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [Song] : A catalog entry that favorites and history refer to by ID
//
// Persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
