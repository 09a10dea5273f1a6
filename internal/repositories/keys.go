package repositories

import "fmt"

// Fixed store keys.
const (
	CurrentUserKey       = "musicPlayerCurrentUser"
	UsersKey             = "musicPlayerUsers"
	DefaultFavoritesKey  = "musicPlayerFavorites"
	DefaultHistoryKey    = "musicPlayerHistory"
	userPartitionPattern = "user_%s_%s"
)

// Partition collections.
const (
	favoritesCollection = "favorites"
	historyCollection   = "history"
)

// FavoritesKey returns the favorites key for username, or the anonymous key when username is empty.
func FavoritesKey(username string) string {
	if username == "" {
		return DefaultFavoritesKey
	}
	return partitionKey(username, favoritesCollection)
}

// HistoryKey returns the history key for username, or the anonymous key when username is empty.
func HistoryKey(username string) string {
	if username == "" {
		return DefaultHistoryKey
	}
	return partitionKey(username, historyCollection)
}

func partitionKey(username, collection string) string {
	return fmt.Sprintf(userPartitionPattern, username, collection)
}
