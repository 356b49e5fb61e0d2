package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/agroclimatic/bulletins/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var templateColumns = []string{
	"id",
	"version",
	"master",
	"content",
	"commit_message",
	"created_at",
	"updated_at",
	"deleted_at",
}

type templateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new PostgreSQL template repository
func NewTemplateRepository(db *sql.DB) domain.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) CreateTemplate(ctx context.Context, template *domain.Template) error {
	now := time.Now().UTC()
	template.CreatedAt = now
	template.UpdatedAt = now

	if template.Version == 0 {
		template.Version = 1
	}

	if err := r.insert(ctx, template); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

func (r *templateRepository) insert(ctx context.Context, template *domain.Template) error {
	query, args, err := psql.Insert("templates").
		Columns(templateColumns[:7]...).
		Values(
			template.ID,
			template.Version,
			domain.AsJSON(&template.Master),
			domain.AsJSON(&template.Content),
			sql.NullString{String: template.CommitMessage, Valid: template.CommitMessage != ""},
			template.CreatedAt,
			template.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *templateRepository) GetTemplateByID(ctx context.Context, id string, version int64) (*domain.Template, error) {
	builder := psql.Select(templateColumns...).
		From("templates").
		Where(sq.Eq{"id": id, "deleted_at": nil})

	if version > 0 {
		builder = builder.Where(sq.Eq{"version": version})
	} else {
		builder = builder.OrderBy("version DESC").Limit(1)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	template, err := scanTemplate(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTemplateNotFound{Message: "template not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return template, nil
}

func (r *templateRepository) GetTemplateLatestVersion(ctx context.Context, id string) (int64, error) {
	query, args, err := psql.Select("COALESCE(MAX(version), 0)").
		From("templates").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var version int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get template latest version: %w", err)
	}
	if version == 0 {
		return 0, &domain.ErrTemplateNotFound{Message: "template not found"}
	}

	return version, nil
}

func (r *templateRepository) GetTemplates(ctx context.Context, status string) ([]*domain.Template, error) {
	latestVersionsCTE := `
		WITH latest_versions AS (
			SELECT id, MAX(version) as max_version
			FROM templates
			GROUP BY id
		)
	`

	columns := make([]string, len(templateColumns))
	for i, column := range templateColumns {
		columns[i] = "t." + column
	}

	builder := psql.Select(columns...).
		Prefix(latestVersionsCTE).
		From("templates t").
		Join("latest_versions lv ON t.id = lv.id AND t.version = lv.max_version").
		Where(sq.Eq{"t.deleted_at": nil}).
		OrderBy("t.updated_at DESC")

	if status != "" {
		builder = builder.Where(sq.Eq{"t.master->>'status'": status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get templates: %w", err)
	}
	defer rows.Close()

	templates := []*domain.Template{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, template)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating template rows: %w", err)
	}

	return templates, nil
}

func (r *templateRepository) UpdateTemplate(ctx context.Context, template *domain.Template) error {
	current, err := r.GetTemplateByID(ctx, template.ID, 0)
	if err != nil {
		return err
	}

	template.Version = current.Version + 1
	template.CreatedAt = current.CreatedAt
	template.UpdatedAt = time.Now().UTC()

	if err := r.insert(ctx, template); err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

func (r *templateRepository) DeleteTemplate(ctx context.Context, id string) error {
	query, args, err := psql.Update("templates").
		Set("deleted_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTemplateNotFound{Message: "template not found"}
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row scanner) (*domain.Template, error) {
	var (
		template      domain.Template
		commitMessage sql.NullString
		deletedAt     sql.NullTime
	)

	err := row.Scan(
		&template.ID,
		&template.Version,
		domain.AsJSON(&template.Master),
		domain.AsJSON(&template.Content),
		&commitMessage,
		&template.CreatedAt,
		&template.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	template.CommitMessage = commitMessage.String
	if deletedAt.Valid {
		template.DeletedAt = &deletedAt.Time
	}

	return &template, nil
}
