package service

import (
	"context"
	"fmt"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/pkg/logger"
	"github.com/agroclimatic/bulletins/pkg/tracing"
)

type TemplateService struct {
	repo   domain.TemplateRepository
	logger logger.Logger
}

func NewTemplateService(repo domain.TemplateRepository, logger logger.Logger) *TemplateService {
	return &TemplateService{
		repo:   repo,
		logger: logger,
	}
}

func (s *TemplateService) CreateTemplate(ctx context.Context, template *domain.Template) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "CreateTemplate")
	defer func() { tracing.EndSpan(span, err) }()

	template.Version = 1
	if err := template.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if err := s.repo.CreateTemplate(ctx, template); err != nil {
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to create template: %v", err))
		return fmt.Errorf("failed to create template: %w", err)
	}

	return nil
}

func (s *TemplateService) GetTemplateByID(ctx context.Context, id string, version int64) (*domain.Template, error) {
	return tracing.TraceMethodWithResult(ctx, "TemplateService", "GetTemplateByID", func(ctx context.Context) (*domain.Template, error) {
		tracing.AddAttribute(ctx, "template_id", id)
		tracing.AddAttribute(ctx, "version", version)

		template, err := s.repo.GetTemplateByID(ctx, id, version)
		if err != nil {
			if _, ok := err.(*domain.ErrTemplateNotFound); ok {
				return nil, err
			}
			s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to get template: %v", err))
			return nil, fmt.Errorf("failed to get template: %w", err)
		}
		return template, nil
	})
}

func (s *TemplateService) GetTemplates(ctx context.Context, status string) ([]*domain.Template, error) {
	return tracing.TraceMethodWithResult(ctx, "TemplateService", "GetTemplates", func(ctx context.Context) ([]*domain.Template, error) {
		templates, err := s.repo.GetTemplates(ctx, status)
		if err != nil {
			s.logger.WithField("status", status).Error(fmt.Sprintf("Failed to get templates: %v", err))
			return nil, fmt.Errorf("failed to get templates: %w", err)
		}
		return templates, nil
	})
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, template *domain.Template) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "UpdateTemplate")
	defer func() { tracing.EndSpan(span, err) }()

	// validated as version 1; the repository assigns the real number
	template.Version = 1
	if err := template.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	if err := s.repo.UpdateTemplate(ctx, template); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			return err
		}
		s.logger.WithField("template_id", template.ID).Error(fmt.Sprintf("Failed to update template: %v", err))
		return fmt.Errorf("failed to update template: %w", err)
	}

	return nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "TemplateService", "DeleteTemplate")
	defer func() { tracing.EndSpan(span, err) }()

	if err := s.repo.DeleteTemplate(ctx, id); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			return err
		}
		s.logger.WithField("template_id", id).Error(fmt.Sprintf("Failed to delete template: %v", err))
		return fmt.Errorf("failed to delete template: %w", err)
	}

	return nil
}
