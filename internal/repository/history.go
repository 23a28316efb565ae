package repository

import (
	"context"

	"taaza-khabar/internal/domain"
)

// SearchHistoryRepository persists searches made by logged-in users.
type SearchHistoryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.SearchHistoryEntry) (int64, error)
	ListRecentByUsername(ctx context.Context, username string, limit int) ([]domain.SearchHistoryEntry, error)
	List(ctx context.Context) ([]domain.SearchHistoryEntry, error)
}
