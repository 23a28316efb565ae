package service

import (
	"context"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/repository"
)

// FeedbackService accepts feedback submissions.
type FeedbackService interface {
	// Submit stores the submission without validating it; the store rejects
	// rows that lack a rating or message.
	Submit(ctx context.Context, submission domain.FeedbackSubmission) error
}

type feedbackService struct {
	feedback repository.FeedbackRepository
}

func NewFeedbackService(feedback repository.FeedbackRepository) FeedbackService {
	return &feedbackService{feedback: feedback}
}

func (s *feedbackService) Submit(ctx context.Context, submission domain.FeedbackSubmission) error {
	_, err := s.feedback.Create(ctx, submission)
	return err
}
