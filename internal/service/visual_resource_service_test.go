package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclimatic/bulletins/internal/domain"
	domainmocks "github.com/agroclimatic/bulletins/internal/domain/mocks"
	"github.com/agroclimatic/bulletins/internal/service"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

func TestVisualResourceService(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*service.VisualResourceService, *domainmocks.MockVisualResourceRepository) {
		ctrl := gomock.NewController(t)
		repo := domainmocks.NewMockVisualResourceRepository(ctrl)
		return service.NewVisualResourceService(repo, logger.NewTestLogger(t)), repo
	}

	resource := func() *domain.VisualResource {
		return &domain.VisualResource{
			ID:       uuid.New().String(),
			Name:     "sol",
			FileType: domain.FileTypeIcon,
			FileURL:  "/assets/icons/sol.svg",
		}
	}

	t.Run("Create", func(t *testing.T) {
		svc, repo := setup(t)
		r := resource()
		repo.EXPECT().CreateVisualResource(gomock.Any(), r).Return(nil)
		assert.NoError(t, svc.CreateVisualResource(ctx, r))
	})

	t.Run("Create rejects unknown file types", func(t *testing.T) {
		svc, _ := setup(t)
		r := resource()
		r.FileType = "video"
		assert.Error(t, svc.CreateVisualResource(ctx, r))
	})

	t.Run("Create repository error", func(t *testing.T) {
		svc, repo := setup(t)
		repo.EXPECT().CreateVisualResource(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		err := svc.CreateVisualResource(ctx, resource())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create visual resource")
	})

	t.Run("List", func(t *testing.T) {
		svc, repo := setup(t)
		repo.EXPECT().GetVisualResources(gomock.Any(), "icon").Return([]*domain.VisualResource{resource()}, nil)
		resources, err := svc.GetVisualResources(ctx, "icon")
		require.NoError(t, err)
		assert.Len(t, resources, 1)
	})

	t.Run("List repository error", func(t *testing.T) {
		svc, repo := setup(t)
		repo.EXPECT().GetVisualResources(gomock.Any(), "").Return(nil, errors.New("db down"))
		_, err := svc.GetVisualResources(ctx, "")
		assert.Error(t, err)
	})

	t.Run("Delete not found", func(t *testing.T) {
		svc, repo := setup(t)
		repo.EXPECT().DeleteVisualResource(gomock.Any(), "x").Return(&domain.ErrVisualResourceNotFound{Message: "visual resource not found"})
		err := svc.DeleteVisualResource(ctx, "x")
		assert.True(t, domain.IsNotFound(err))
	})

	t.Run("Delete", func(t *testing.T) {
		svc, repo := setup(t)
		repo.EXPECT().DeleteVisualResource(gomock.Any(), "x").Return(nil)
		assert.NoError(t, svc.DeleteVisualResource(ctx, "x"))
	})
}
