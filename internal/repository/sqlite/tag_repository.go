package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"taaza-khabar/internal/domain"
	"taaza-khabar/internal/repository"
)

const createTagsTable = `
CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tag_name TEXT UNIQUE NOT NULL,
	tag_color TEXT NOT NULL
);
`

type TagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) repository.TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTagsTable); err != nil {
		return fmt.Errorf("create tags table: %w", err)
	}
	return r.seed(ctx)
}

func (r *TagRepository) seed(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	var count int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&count); err != nil {
		return fmt.Errorf("count tags: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, tag := range domain.DefaultTags {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO tags (tag_name, tag_color)
VALUES (?, ?)`,
			tag.Name,
			tag.Color,
		); err != nil {
			return fmt.Errorf("insert tag %s: %w", tag.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, tag_name, tag_color
FROM tags
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
