package service

import (
	"context"
	"fmt"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/logger"
	"github.com/agroclimatic/bulletins/pkg/tracing"
)

type VisualResourceService struct {
	repo   domain.VisualResourceRepository
	logger logger.Logger
}

func NewVisualResourceService(repo domain.VisualResourceRepository, logger logger.Logger) *VisualResourceService {
	return &VisualResourceService{repo: repo, logger: logger}
}

func (s *VisualResourceService) CreateVisualResource(ctx context.Context, resource *domain.VisualResource) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "VisualResourceService", "CreateVisualResource")
	defer func() { tracing.EndSpan(span, err) }()

	if err := resource.Validate(); err != nil {
		return fmt.Errorf("invalid visual resource: %w", err)
	}
	if err := s.repo.CreateVisualResource(ctx, resource); err != nil {
		s.logger.WithField("file_url", resource.FileURL).Error(fmt.Sprintf("Failed to create visual resource: %v", err))
		return fmt.Errorf("failed to create visual resource: %w", err)
	}
	return nil
}

func (s *VisualResourceService) GetVisualResources(ctx context.Context, fileType string) ([]*domain.VisualResource, error) {
	return tracing.TraceMethodWithResult(ctx, "VisualResourceService", "GetVisualResources", func(ctx context.Context) ([]*domain.VisualResource, error) {
		resources, err := s.repo.GetVisualResources(ctx, fileType)
		if err != nil {
			s.logger.WithField("file_type", fileType).Error(fmt.Sprintf("Failed to get visual resources: %v", err))
			return nil, fmt.Errorf("failed to get visual resources: %w", err)
		}
		return resources, nil
	})
}

func (s *VisualResourceService) DeleteVisualResource(ctx context.Context, id string) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "VisualResourceService", "DeleteVisualResource")
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.repo.DeleteVisualResource(ctx, id); err != nil {
		if _, ok := err.(*domain.ErrVisualResourceNotFound); ok {
			return err
		}
		s.logger.WithField("resource_id", id).Error(fmt.Sprintf("Failed to delete visual resource: %v", err))
		return fmt.Errorf("failed to delete visual resource: %w", err)
	}
	return nil
}
