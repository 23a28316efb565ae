package repository

import (
	"context"

	"taaza-khabar/internal/domain"
)

// FeedbackRepository stores feedback submissions.
type FeedbackRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, submission domain.FeedbackSubmission) (int64, error)
	List(ctx context.Context) ([]domain.Feedback, error)
}
