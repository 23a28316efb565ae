package sqlite

import (
	"context"
	"database/sql"

	"taaza-khabar/internal/repository"
)

// Repositories bundles the sqlite-backed repositories sharing one handle.
type Repositories struct {
	Users    repository.UserRepository
	History  repository.SearchHistoryRepository
	Feedback repository.FeedbackRepository
	Tags     repository.TagRepository
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(db),
		History:  NewSearchHistoryRepository(db),
		Feedback: NewFeedbackRepository(db),
		Tags:     NewTagRepository(db),
	}
}

// Init creates every table that is missing and seeds the default tags.
func (r *Repositories) Init(ctx context.Context) error {
	inits := []func(context.Context) error{
		r.Users.Init,
		r.History.Init,
		r.Feedback.Init,
		r.Tags.Init,
	}
	for _, initTable := range inits {
		if err := initTable(ctx); err != nil {
			return err
		}
	}
	return nil
}
