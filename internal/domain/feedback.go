package domain

import "time"

// Feedback is a stored feedback row.
type Feedback struct {
	ID        int64
	Name      string
	Email     string
	Rating    int
	Message   string
	Timestamp time.Time
}

// FeedbackSubmission is a feedback payload as received from a client. Each
// field holds the decoded JSON value (string, int64, float64, bool or nil)
// untouched; the store's column affinity converts it and its NOT NULL
// constraints reject a nil Rating or Message.
type FeedbackSubmission struct {
	Name    any
	Email   any
	Rating  any
	Message any
}
