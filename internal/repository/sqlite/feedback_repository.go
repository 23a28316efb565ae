package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/repository"
)

const createFeedbackTable = `
CREATE TABLE IF NOT EXISTS feedback (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT,
	email TEXT,
	rating INTEGER NOT NULL,
	message TEXT NOT NULL,
	timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

type FeedbackRepository struct {
	db *sql.DB
}

func NewFeedbackRepository(db *sql.DB) repository.FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFeedbackTable); err != nil {
		return fmt.Errorf("create feedback table: %w", err)
	}
	return nil
}

// Create inserts the submission as given. Column affinity converts the
// values ("5" becomes 5 in rating); a nil Rating or Message is written as NULL
// and rejected by the table constraints.
func (r *FeedbackRepository) Create(ctx context.Context, submission domain.FeedbackSubmission) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO feedback (name, email, rating, message)
VALUES (?, ?, ?, ?)`,
		submission.Name,
		submission.Email,
		submission.Rating,
		submission.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("insert feedback: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("feedback last insert id: %w", err)
	}
	return id, nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, COALESCE(name, ''), COALESCE(email, ''), rating, message, CAST(timestamp AS TEXT)
FROM feedback
ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var list []domain.Feedback
	for rows.Next() {
		var (
			fb        domain.Feedback
			rating    any
			timestamp sql.NullString
		)
		if err := rows.Scan(&fb.ID, &fb.Name, &fb.Email, &rating, &fb.Message, &timestamp); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		fb.Rating = ratingValue(rating)
		if timestamp.Valid {
			t, err := parseTimestamp(timestamp.String)
			if err != nil {
				return nil, fmt.Errorf("feedback timestamp: %w", err)
			}
			fb.Timestamp = t
		}
		list = append(list, fb)
	}
	return list, rows.Err()
}

// ratingValue reads a rating column that affinity could not make an integer,
// such as 4.5 or "five". Fractions are truncated; anything else is 0.
func ratingValue(v any) int {
	switch r := v.(type) {
	case int64:
		return int(r)
	case float64:
		return int(r)
	case []byte:
		return ratingValue(string(r))
	case string:
		s := strings.TrimSpace(r)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}
