package service

import (
	"context"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/repository"
)

// TagService lists the tag catalogue.
type TagService interface {
	List(ctx context.Context) ([]domain.Tag, error)
}

type tagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}
