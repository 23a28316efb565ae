package domain

import "time"

// SearchHistoryEntry records a news search performed by a logged-in user.
// Username references users.username by value only.
type SearchHistoryEntry struct {
	ID           int64
	Username     string
	Query        string
	ResultsCount int
	Timestamp    time.Time
}
