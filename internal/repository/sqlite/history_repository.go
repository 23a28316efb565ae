package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/repository"
)

const createSearchHistoryTable = `
CREATE TABLE IF NOT EXISTS search_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	query TEXT NOT NULL,
	results_count INTEGER,
	timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const selectSearchHistory = `
SELECT id, username, query, COALESCE(results_count, 0), CAST(timestamp AS TEXT)
FROM search_history`

type SearchHistoryRepository struct {
	db *sql.DB
}

func NewSearchHistoryRepository(db *sql.DB) repository.SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

func (r *SearchHistoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createSearchHistoryTable); err != nil {
		return fmt.Errorf("create search_history table: %w", err)
	}
	return nil
}

func (r *SearchHistoryRepository) Create(ctx context.Context, entry *domain.SearchHistoryEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO search_history (username, query, results_count)
VALUES (?, ?, ?)`,
		entry.Username,
		entry.Query,
		entry.ResultsCount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert search history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("search history last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *SearchHistoryRepository) ListRecentByUsername(ctx context.Context, username string, limit int) ([]domain.SearchHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectSearchHistory+`
WHERE username = ?
ORDER BY timestamp DESC, id DESC
LIMIT ?`, username, limit)
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	return scanSearchHistory(rows)
}

func (r *SearchHistoryRepository) List(ctx context.Context) ([]domain.SearchHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectSearchHistory+`
ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query search history: %w", err)
	}
	return scanSearchHistory(rows)
}

func scanSearchHistory(rows *sql.Rows) ([]domain.SearchHistoryEntry, error) {
	defer rows.Close()

	var entries []domain.SearchHistoryEntry
	for rows.Next() {
		var (
			entry     domain.SearchHistoryEntry
			timestamp sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Username, &entry.Query, &entry.ResultsCount, &timestamp); err != nil {
			return nil, fmt.Errorf("scan search history: %w", err)
		}
		if timestamp.Valid {
			t, err := parseTimestamp(timestamp.String)
			if err != nil {
				return nil, fmt.Errorf("search history timestamp: %w", err)
			}
			entry.Timestamp = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
