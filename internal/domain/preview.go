package domain

import (
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"

	"github.com/agroclimatic/bulletins/pkg/bulletin"
)

//go:generate mockgen -destination mocks/mock_preview_service.go -package mocks github.com/agroclimatic/bulletins/internal/domain PreviewService

// RenderSource names the document to render: a stored template version or
// an inline document. Inline cards take precedence over stored ones.
type RenderSource struct {
	TemplateID        string                       `json:"template_id,omitempty"`
	Version           int64                        `json:"version,omitempty"`
	Document          *bulletin.CreateTemplateData `json:"document,omitempty"`
	Cards             []bulletin.Card              `json:"cards,omitempty"`
	Locale            string                       `json:"locale,omitempty"`
	ForceGlobalHeader bool                         `json:"force_global_header,omitempty"`
	TemplateData      MapOfAny                     `json:"template_data,omitempty"`
}

func (s *RenderSource) validate() error {
	switch {
	case s.TemplateID == "" && s.Document == nil:
		return fmt.Errorf("template_id or document is required")
	case s.TemplateID != "" && s.Document != nil:
		return fmt.Errorf("template_id and document are mutually exclusive")
	case s.TemplateID != "" && !govalidator.IsUUID(s.TemplateID):
		return fmt.Errorf("template_id must be a UUID")
	case s.Version < 0:
		return fmt.Errorf("version must be zero or positive")
	case len(s.Locale) > 10:
		return fmt.Errorf("locale length must be between 0 and 10")
	}
	for i, card := range s.Cards {
		if card.ID == "" {
			return fmt.Errorf("cards[%d]: id is required", i)
		}
	}
	return nil
}

type PreviewRequest struct {
	RenderSource
	Mode         string `json:"mode,omitempty"`
	SectionIndex int    `json:"section_index"`
	PageIndex    int    `json:"page_index"`
}

func (r *PreviewRequest) Validate() (bulletin.ViewMode, error) {
	if err := r.RenderSource.validate(); err != nil {
		return "", fmt.Errorf("invalid preview request: %w", err)
	}
	mode, err := bulletin.ParseViewMode(r.Mode)
	if err != nil {
		return "", fmt.Errorf("invalid preview request: %w", err)
	}
	if r.SectionIndex < 0 || r.PageIndex < 0 {
		return "", fmt.Errorf("invalid preview request: section_index and page_index must be zero or positive")
	}
	return mode, nil
}

type PreviewResponse struct {
	HTML         string `json:"html"`
	Mode         string `json:"mode"`
	SectionCount int    `json:"section_count"`
	TotalPages   int    `json:"total_pages"`
	SectionIndex int    `json:"section_index"`
	PageIndex    int    `json:"page_index"`
}

type PagesRequest struct {
	RenderSource
}

func (r *PagesRequest) Validate() error {
	if err := r.RenderSource.validate(); err != nil {
		return fmt.Errorf("invalid pages request: %w", err)
	}
	return nil
}

// RenderedPage is one page as a standalone HTML document
type RenderedPage struct {
	SectionIndex int    `json:"section_index"`
	PageIndex    int    `json:"page_index"`
	HTML         string `json:"html"`
}

type PagesResponse struct {
	Pages []RenderedPage `json:"pages"`
}

// PreviewService renders stored or inline documents
type PreviewService interface {
	Preview(ctx context.Context, req PreviewRequest) (*PreviewResponse, error)
	RenderPages(ctx context.Context, req PagesRequest) (*PagesResponse, error)
}
