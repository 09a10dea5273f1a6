// Package auth implements the player's account layer: a user directory, a single current-user
// session and per-user favorites/history partitions, all kept in a [repositories.Store].
//
// A [Manager] moves between two states:
//
//	Anonymous ──Login──▶ Authenticated(u) ──Logout──▶ Anonymous
//	                          │  ▲
//	                          └──┘ Login (flushes u first)
//
// Every transition persists the session, swaps the shared [Collections] to the target partition
// and notifies subscribed [Listener]s synchronously.
//
// Validation failures come back as a [Result]; storage failures are logged and replaced with
// empty defaults so a corrupt or unavailable store never stops the player from starting.
//
// Passwords are stored and compared in plaintext. This package is not a security boundary.
package auth
