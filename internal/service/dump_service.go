package service

import (
	"context"
	"fmt"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/repository"
)

// DumpService reads every table for the database viewer.
type DumpService interface {
	Dump(ctx context.Context) (*domain.DatabaseDump, error)
}

type dumpService struct {
	users    repository.UserRepository
	history  repository.SearchHistoryRepository
	feedback repository.FeedbackRepository
	tags     repository.TagRepository
}

func NewDumpService(
	users repository.UserRepository,
	history repository.SearchHistoryRepository,
	feedback repository.FeedbackRepository,
	tags repository.TagRepository,
) DumpService {
	return &dumpService{
		users:    users,
		history:  history,
		feedback: feedback,
		tags:     tags,
	}
}

func (s *dumpService) Dump(ctx context.Context) (*domain.DatabaseDump, error) {
	var (
		dump domain.DatabaseDump
		err  error
	)
	if dump.Users, err = s.users.List(ctx); err != nil {
		return nil, fmt.Errorf("dump users: %w", err)
	}
	if dump.SearchHistory, err = s.history.List(ctx); err != nil {
		return nil, fmt.Errorf("dump search history: %w", err)
	}
	if dump.Feedback, err = s.feedback.List(ctx); err != nil {
		return nil, fmt.Errorf("dump feedback: %w", err)
	}
	if dump.Tags, err = s.tags.List(ctx); err != nil {
		return nil, fmt.Errorf("dump tags: %w", err)
	}
	return &dump, nil
}
