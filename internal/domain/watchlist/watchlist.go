package watchlist

// WatchlistResponse is returned by add and remove
type WatchlistResponse struct {
	Message   string   `json:"message"`
	Watchlist []string `json:"watchlist"`
}

// CheckResponse is returned by the membership check
type CheckResponse struct {
	InWatchlist bool `json:"in_watchlist"`
}

// Contains reports whether movieID is in list.
func Contains(list []string, movieID string) bool {
	return IndexOf(list, movieID) >= 0
}

// IndexOf returns the position of movieID in list, or -1.
func IndexOf(list []string, movieID string) int {
	for i, id := range list {
		if id == movieID {
			return i
		}
	}
	return -1
}
