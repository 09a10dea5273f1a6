// Package repositories implements persistence for the player.
//
// Two families live here:
//   - [Store] : a string-keyed, string-valued key-value store standing in for browser local storage.
//     [SQLiteStore] keeps it in the storage table, [MemoryStore] keeps it in a map.
//     [ReadJSON] and [WriteJSON] encode and decode typed values at the store boundary, and the
//     key helpers ([FavoritesKey], [HistoryKey]) are the only place key templates are built.
//   - [SongRepository] : the song catalog, a [models.Repository] with atomic sequence generation.
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
