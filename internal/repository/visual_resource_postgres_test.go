package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclimatic/bulletins/internal/domain"
)

const iconID = "3c9e4a2b-1f5d-4e6a-9b8c-7d6e5f4a3b2c"

func TestVisualResourceRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewVisualResourceRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO visual_resources \(id,name,file_type,file_url,created_at\)`).
		WithArgs(iconID, "Sol", "icon", "/icons/sun.svg", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resource := &domain.VisualResource{ID: iconID, Name: "Sol", FileType: domain.FileTypeIcon, FileURL: "/icons/sun.svg"}
	require.NoError(t, repo.CreateVisualResource(ctx, resource))
	assert.False(t, resource.CreatedAt.IsZero())

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, name, file_type, file_url, created_at FROM visual_resources WHERE file_type = \$1 ORDER BY created_at DESC`).
		WithArgs("icon").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "file_type", "file_url", "created_at"}).
			AddRow(iconID, "Sol", "icon", "/icons/sun.svg", now))

	resources, err := repo.GetVisualResources(ctx, "icon")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, domain.FileTypeIcon, resources[0].FileType)

	mock.ExpectExec(`DELETE FROM visual_resources WHERE id = \$1`).
		WithArgs(iconID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteVisualResource(ctx, iconID))

	mock.ExpectExec("DELETE FROM visual_resources").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.IsType(t, &domain.ErrVisualResourceNotFound{}, repo.DeleteVisualResource(ctx, iconID))

	assert.NoError(t, mock.ExpectationsWereMet())
}
