package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/bulletin"
)

const templateID = "5b8f7c1e-3d7a-4d55-9a43-0f1a6c2b9e10"

var templateRowColumns = []string{"id", "version", "master", "content", "commit_message", "created_at", "updated_at", "deleted_at"}

func templateRow(rows *sqlmock.Rows, version int64, status string, now time.Time) *sqlmock.Rows {
	return rows.AddRow(
		templateID,
		version,
		[]byte(`{"template_name":"Boletín semanal","status":"`+status+`","access_config":{"is_public":true}}`),
		[]byte(`{"style_config":{"font_size":14},"sections":[{"section_id":"s1","blocks":[]}]}`),
		"initial",
		now,
		now,
		nil,
	)
}

func newTemplateRepo(t *testing.T) (domain.TemplateRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTemplateRepository(db), mock
}

func TestTemplateRepository_CreateTemplate(t *testing.T) {
	repo, mock := newTemplateRepo(t)

	template := &domain.Template{
		ID:      templateID,
		Master:  bulletin.TemplateMaster{TemplateName: "Boletín", Status: "draft"},
		Content: bulletin.TemplateContent{Sections: []bulletin.Section{}},
	}

	mock.ExpectExec(`INSERT INTO templates \(id,version,master,content,commit_message,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7\)`).
		WithArgs(templateID, int64(1), sqlmock.AnyArg(), sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.CreateTemplate(context.Background(), template))
	assert.Equal(t, int64(1), template.Version)
	assert.False(t, template.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec("INSERT INTO templates").WillReturnError(errors.New("duplicate key"))
	err := repo.CreateTemplate(context.Background(), template)
	assert.ErrorContains(t, err, "failed to create template: duplicate key")
}

func TestTemplateRepository_GetTemplateByID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("latest version", func(t *testing.T) {
		repo, mock := newTemplateRepo(t)

		mock.ExpectQuery(`SELECT .* FROM templates WHERE deleted_at IS NULL AND id = \$1 ORDER BY version DESC LIMIT 1`).
			WithArgs(templateID).
			WillReturnRows(templateRow(sqlmock.NewRows(templateRowColumns), 3, "published", now))

		template, err := repo.GetTemplateByID(context.Background(), templateID, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), template.Version)
		assert.Equal(t, "Boletín semanal", template.Master.TemplateName)
		assert.True(t, template.Master.AccessConfig.IsPublic)
		assert.Equal(t, bulletin.Dimension("14px"), template.Content.StyleConfig.FontSize)
		assert.Equal(t, "initial", template.CommitMessage)
		assert.Nil(t, template.DeletedAt)
	})

	t.Run("specific version", func(t *testing.T) {
		repo, mock := newTemplateRepo(t)

		mock.ExpectQuery(`WHERE deleted_at IS NULL AND id = \$1 AND version = \$2`).
			WithArgs(templateID, int64(2)).
			WillReturnRows(templateRow(sqlmock.NewRows(templateRowColumns), 2, "draft", now))

		template, err := repo.GetTemplateByID(context.Background(), templateID, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), template.Version)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTemplateRepo(t)

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(templateRowColumns))

		_, err := repo.GetTemplateByID(context.Background(), templateID, 0)
		var notFound *domain.ErrTemplateNotFound
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("query error", func(t *testing.T) {
		repo, mock := newTemplateRepo(t)

		mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

		_, err := repo.GetTemplateByID(context.Background(), templateID, 0)
		assert.ErrorContains(t, err, "failed to get template")
	})
}

func TestTemplateRepository_GetTemplateLatestVersion(t *testing.T) {
	repo, mock := newTemplateRepo(t)

	mock.ExpectQuery(`SELECT COALESCE\(MAX\(version\), 0\) FROM templates`).
		WithArgs(templateID).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(4))

	version, err := repo.GetTemplateLatestVersion(context.Background(), templateID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)

	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(0))
	_, err = repo.GetTemplateLatestVersion(context.Background(), templateID)
	assert.IsType(t, &domain.ErrTemplateNotFound{}, err)
}

func TestTemplateRepository_GetTemplates(t *testing.T) {
	now := time.Now().UTC()
	repo, mock := newTemplateRepo(t)

	mock.ExpectQuery(`WITH latest_versions AS .* JOIN latest_versions lv ON t.id = lv.id AND t.version = lv.max_version WHERE t.deleted_at IS NULL AND t.master->>'status' = \$1 ORDER BY t.updated_at DESC`).
		WithArgs("published").
		WillReturnRows(templateRow(sqlmock.NewRows(templateRowColumns), 2, "published", now))

	templates, err := repo.GetTemplates(context.Background(), "published")
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, int64(2), templates[0].Version)

	mock.ExpectQuery("WITH latest_versions").WillReturnRows(sqlmock.NewRows(templateRowColumns))
	templates, err = repo.GetTemplates(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, templates)
	assert.NotNil(t, templates)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateRepository_UpdateTemplate(t *testing.T) {
	created := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	t.Run("inserts next version", func(t *testing.T) {
		repo, mock := newTemplateRepo(t)

		mock.ExpectQuery("SELECT .* FROM templates").
			WillReturnRows(templateRow(sqlmock.NewRows(templateRowColumns), 2, "draft", created))
		mock.ExpectExec("INSERT INTO templates").
			WithArgs(templateID, int64(3), sqlmock.AnyArg(), sqlmock.AnyArg(), "fix dates", created, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		template := &domain.Template{ID: templateID, CommitMessage: "fix dates"}
		require.NoError(t, repo.UpdateTemplate(context.Background(), template))
		assert.Equal(t, int64(3), template.Version)
		assert.Equal(t, created, template.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing template", func(t *testing.T) {
		repo, mock := newTemplateRepo(t)

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(templateRowColumns))

		err := repo.UpdateTemplate(context.Background(), &domain.Template{ID: templateID})
		assert.IsType(t, &domain.ErrTemplateNotFound{}, err)
	})
}

func TestTemplateRepository_DeleteTemplate(t *testing.T) {
	repo, mock := newTemplateRepo(t)

	mock.ExpectExec(`UPDATE templates SET deleted_at = NOW\(\) WHERE deleted_at IS NULL AND id = \$1`).
		WithArgs(templateID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	assert.NoError(t, repo.DeleteTemplate(context.Background(), templateID))

	mock.ExpectExec("UPDATE templates").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.IsType(t, &domain.ErrTemplateNotFound{}, repo.DeleteTemplate(context.Background(), templateID))

	mock.ExpectExec("UPDATE templates").WillReturnError(errors.New("timeout"))
	assert.ErrorContains(t, repo.DeleteTemplate(context.Background(), templateID), "failed to delete template")
}
