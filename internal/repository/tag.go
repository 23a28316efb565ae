package repository

import (
	"context"

	"taaza-khabar/internal/domain"
)

// TagRepository exposes the fixed tag catalogue.
type TagRepository interface {
	// Init creates the table and seeds domain.DefaultTags when it is empty.
	Init(ctx context.Context) error
	List(ctx context.Context) ([]domain.Tag, error)
}
