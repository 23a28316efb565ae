package domain

// DatabaseDump holds every row of every table, as shown by the database viewer.
type DatabaseDump struct {
	Users         []User
	SearchHistory []SearchHistoryEntry
	Feedback      []Feedback
	Tags          []Tag
}
