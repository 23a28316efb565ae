package service

import (
	"context"
	"fmt"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/news"
	"taaza-khabar/internal/repository"
)

// HistoryLimit is the number of entries returned by SearchService.History.
const HistoryLimit = 10

// SearchService runs news searches and keeps per-user search history.
type SearchService interface {
	// Search queries the news gateway. When username is not empty a history
	// entry is recorded for every successful search.
	Search(ctx context.Context, username, query string, page int) (*news.Result, error)
	History(ctx context.Context, username string) ([]domain.SearchHistoryEntry, error)
}

type searchService struct {
	gateway news.Searcher
	history repository.SearchHistoryRepository
}

func NewSearchService(gateway news.Searcher, history repository.SearchHistoryRepository) SearchService {
	return &searchService{
		gateway: gateway,
		history: history,
	}
}

func (s *searchService) Search(ctx context.Context, username, query string, page int) (*news.Result, error) {
	result, err := s.gateway.Search(ctx, query, page)
	if err != nil {
		return nil, err
	}

	if username != "" {
		entry := &domain.SearchHistoryEntry{
			Username:     username,
			Query:        news.NormalizeQuery(query),
			ResultsCount: result.ArticleCount,
		}
		if _, err := s.history.Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("record search: %w", err)
		}
	}

	return result, nil
}

func (s *searchService) History(ctx context.Context, username string) ([]domain.SearchHistoryEntry, error) {
	return s.history.ListRecentByUsername(ctx, username, HistoryLimit)
}
