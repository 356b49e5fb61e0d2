package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/agroclimatic/bulletins/internal/domain"
)

type visualResourceRepository struct {
	db *sql.DB
}

// NewVisualResourceRepository creates a new PostgreSQL visual resource repository
func NewVisualResourceRepository(db *sql.DB) domain.VisualResourceRepository {
	return &visualResourceRepository{db: db}
}

func (r *visualResourceRepository) CreateVisualResource(ctx context.Context, resource *domain.VisualResource) error {
	resource.CreatedAt = time.Now().UTC()

	query, args, err := psql.Insert("visual_resources").
		Columns("id", "name", "file_type", "file_url", "created_at").
		Values(resource.ID, resource.Name, string(resource.FileType), resource.FileURL, resource.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create visual resource: %w", err)
	}
	return nil
}

func (r *visualResourceRepository) GetVisualResources(ctx context.Context, fileType string) ([]*domain.VisualResource, error) {
	builder := psql.Select("id", "name", "file_type", "file_url", "created_at").
		From("visual_resources").
		OrderBy("created_at DESC")

	if fileType != "" {
		builder = builder.Where(sq.Eq{"file_type": fileType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get visual resources: %w", err)
	}
	defer rows.Close()

	resources := []*domain.VisualResource{}
	for rows.Next() {
		var resource domain.VisualResource
		if err := rows.Scan(&resource.ID, &resource.Name, &resource.FileType, &resource.FileURL, &resource.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan visual resource: %w", err)
		}
		resources = append(resources, &resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visual resource rows: %w", err)
	}
	return resources, nil
}

func (r *visualResourceRepository) DeleteVisualResource(ctx context.Context, id string) error {
	query, args, err := psql.Delete("visual_resources").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete visual resource: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrVisualResourceNotFound{Message: "visual resource not found"}
	}
	return nil
}
