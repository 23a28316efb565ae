package service

import (
	"context"
	"errors"
	"fmt"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/news"
	"taaza-khabar/internal/repository"
)

type fakeUsers struct {
	byName    map[string]domain.User
	createErr error
	getErr    error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: map[string]domain.User{}}
}

func (f *fakeUsers) Init(context.Context) error { return nil }

func (f *fakeUsers) Create(_ context.Context, u *domain.User) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	if _, ok := f.byName[u.Username]; ok {
		return 0, fmt.Errorf("user %q: %w", u.Username, repository.ErrAlreadyExists)
	}
	u.ID = int64(len(f.byName) + 1)
	f.byName[u.Username] = *u
	return u.ID, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) List(context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.byName {
		out = append(out, u)
	}
	return out, nil
}

type fakeHistory struct {
	entries   []domain.SearchHistoryEntry
	createErr error
	lastLimit int
}

func (f *fakeHistory) Init(context.Context) error { return nil }

func (f *fakeHistory) Create(_ context.Context, e *domain.SearchHistoryEntry) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.entries = append(f.entries, *e)
	return int64(len(f.entries)), nil
}

func (f *fakeHistory) ListRecentByUsername(_ context.Context, username string, limit int) ([]domain.SearchHistoryEntry, error) {
	f.lastLimit = limit
	var out []domain.SearchHistoryEntry
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].Username == username {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func (f *fakeHistory) List(context.Context) ([]domain.SearchHistoryEntry, error) {
	return f.entries, nil
}

type fakeFeedback struct {
	submissions []domain.FeedbackSubmission
	listErr     error
}

func (f *fakeFeedback) Init(context.Context) error { return nil }

func (f *fakeFeedback) Create(_ context.Context, s domain.FeedbackSubmission) (int64, error) {
	if s.Rating == nil || s.Message == nil {
		return 0, errors.New("NOT NULL constraint failed")
	}
	f.submissions = append(f.submissions, s)
	return int64(len(f.submissions)), nil
}

func (f *fakeFeedback) List(context.Context) ([]domain.Feedback, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Feedback, 0, len(f.submissions))
	for i, s := range f.submissions {
		name, _ := s.Name.(string)
		email, _ := s.Email.(string)
		rating, _ := s.Rating.(int)
		message, _ := s.Message.(string)
		out = append(out, domain.Feedback{ID: int64(i + 1), Name: name, Email: email, Rating: rating, Message: message})
	}
	return out, nil
}

type fakeTags struct{}

func (fakeTags) Init(context.Context) error { return nil }

func (fakeTags) List(context.Context) ([]domain.Tag, error) {
	return domain.DefaultTags, nil
}

type fakeGateway struct {
	result  *news.Result
	err     error
	queries []string
}

func (f *fakeGateway) Search(_ context.Context, query string, _ int) (*news.Result, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
