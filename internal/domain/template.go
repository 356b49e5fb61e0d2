package domain

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"github.com/agroclimatic/bulletins/pkg/bulletin"
)

//go:generate mockgen -destination mocks/mock_template_service.go -package mocks github.com/agroclimatic/bulletins/internal/domain TemplateService
//go:generate mockgen -destination mocks/mock_template_repository.go -package mocks github.com/agroclimatic/bulletins/internal/domain TemplateRepository

type TemplateStatus string

const (
	TemplateStatusDraft     TemplateStatus = "draft"
	TemplateStatusPublished TemplateStatus = "published"
	TemplateStatusArchived  TemplateStatus = "archived"
)

func (s TemplateStatus) Validate() error {
	switch s {
	case TemplateStatusDraft, TemplateStatusPublished, TemplateStatusArchived:
		return nil
	}
	return fmt.Errorf("invalid template status: %s", s)
}

// Template is one immutable version of a bulletin template
type Template struct {
	ID            string                   `json:"id"`
	Version       int64                    `json:"version"`
	Master        bulletin.TemplateMaster  `json:"master"`
	Content       bulletin.TemplateContent `json:"content"`
	CommitMessage string                   `json:"commit_message,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
	DeletedAt     *time.Time               `json:"deleted_at,omitempty"`
}

func (t *Template) Status() TemplateStatus {
	if t.Master.Status == "" {
		return TemplateStatusDraft
	}
	return TemplateStatus(t.Master.Status)
}

func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("invalid template: id is required")
	}
	if !govalidator.IsUUID(t.ID) {
		return fmt.Errorf("invalid template: id must be a UUID")
	}
	if t.Version <= 0 {
		return fmt.Errorf("invalid template: version must be positive")
	}
	if err := validateMaster(t.Master); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	if err := ValidateContent(t.Content); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	if len(t.CommitMessage) > 255 {
		return fmt.Errorf("invalid template: commit_message length must be between 0 and 255")
	}
	return nil
}

// Document returns the renderer input for this version
func (t *Template) Document() *bulletin.CreateTemplateData {
	return &bulletin.CreateTemplateData{
		Master: t.Master,
		Version: bulletin.TemplateVersion{
			VersionNum:    int(t.Version),
			CommitMessage: t.CommitMessage,
			Content:       t.Content,
		},
	}
}

func validateMaster(m bulletin.TemplateMaster) error {
	if m.TemplateName == "" {
		return fmt.Errorf("template_name is required")
	}
	if !govalidator.InRangeInt(len(m.TemplateName), 1, 255) {
		return fmt.Errorf("template_name length must be between 1 and 255")
	}
	if m.Status != "" {
		if err := TemplateStatus(m.Status).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateContent checks the structure the renderer relies on. Unknown field
// types are accepted and render as placeholders.
func ValidateContent(c bulletin.TemplateContent) error {
	if err := validateFields("header_config", configFields(c.HeaderConfig)); err != nil {
		return err
	}
	if err := validateFields("footer_config", configFields(c.FooterConfig)); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Sections))
	for i, section := range c.Sections {
		if section.SectionID != "" {
			if seen[section.SectionID] {
				return fmt.Errorf("sections[%d]: duplicate section_id %q", i, section.SectionID)
			}
			seen[section.SectionID] = true
		}
		for j, block := range section.Blocks {
			if err := validateFields(fmt.Sprintf("sections[%d].blocks[%d]", i, j), block.Fields); err != nil {
				return err
			}
		}
	}
	return nil
}

func configFields(h *bulletin.HeaderFooterConfig) []bulletin.Field {
	if h == nil {
		return nil
	}
	return h.Fields
}

func validateFields(path string, fields []bulletin.Field) error {
	for i, field := range fields {
		if field.FieldID == "" {
			return fmt.Errorf("%s.fields[%d]: field_id is required", path, i)
		}
		if field.Type == "" {
			return fmt.Errorf("%s.fields[%d]: type is required", path, i)
		}
	}
	return nil
}

type CreateTemplateRequest struct {
	ID            string                   `json:"id,omitempty"`
	Master        bulletin.TemplateMaster  `json:"master"`
	Content       bulletin.TemplateContent `json:"content"`
	CommitMessage string                   `json:"commit_message,omitempty"`
}

func (r *CreateTemplateRequest) Validate() (*Template, error) {
	id := r.ID
	if id == "" {
		id = uuid.New().String()
	}

	template := &Template{
		ID:            id,
		Version:       1,
		Master:        r.Master,
		Content:       r.Content,
		CommitMessage: r.CommitMessage,
	}
	if template.Master.Status == "" {
		template.Master.Status = string(TemplateStatusDraft)
	}

	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid create template request: %w", err)
	}
	return template, nil
}

type GetTemplatesRequest struct {
	Status string `json:"status,omitempty"`
}

func (r *GetTemplatesRequest) FromURLParams(queryParams url.Values) error {
	r.Status = queryParams.Get("status")

	if r.Status != "" {
		if err := TemplateStatus(r.Status).Validate(); err != nil {
			return fmt.Errorf("invalid get templates request: %w", err)
		}
	}
	return nil
}

type GetTemplateRequest struct {
	ID      string `json:"id"`
	Version int64  `json:"version,omitempty"`
}

func (r *GetTemplateRequest) FromURLParams(queryParams url.Values) error {
	r.ID = queryParams.Get("id")

	if r.ID == "" {
		return fmt.Errorf("invalid get template request: id is required")
	}
	if !govalidator.IsUUID(r.ID) {
		return fmt.Errorf("invalid get template request: id must be a UUID")
	}

	if versionStr := queryParams.Get("version"); versionStr != "" {
		version, err := strconv.ParseInt(versionStr, 10, 64)
		if err != nil || version < 0 {
			return fmt.Errorf("invalid get template request: version must be a valid integer")
		}
		r.Version = version
	}
	return nil
}

type UpdateTemplateRequest struct {
	ID            string                   `json:"id"`
	Master        bulletin.TemplateMaster  `json:"master"`
	Content       bulletin.TemplateContent `json:"content"`
	CommitMessage string                   `json:"commit_message,omitempty"`
}

// Validate returns the new version. The repository assigns its number.
func (r *UpdateTemplateRequest) Validate() (*Template, error) {
	template := &Template{
		ID:            r.ID,
		Version:       1,
		Master:        r.Master,
		Content:       r.Content,
		CommitMessage: r.CommitMessage,
	}
	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid update template request: %w", err)
	}
	template.Version = 0
	return template, nil
}

type DeleteTemplateRequest struct {
	ID string `json:"id" valid:"required,uuid"`
}

func (r *DeleteTemplateRequest) Validate() error {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return fmt.Errorf("invalid delete template request: %w", err)
	}
	return nil
}

// TemplateService provides operations for managing templates
type TemplateService interface {
	CreateTemplate(ctx context.Context, template *Template) error

	// GetTemplateByID returns the given version, or the latest one when version is 0
	GetTemplateByID(ctx context.Context, id string, version int64) (*Template, error)

	// GetTemplates returns the latest version of every template not deleted
	GetTemplates(ctx context.Context, status string) ([]*Template, error)

	// UpdateTemplate stores a new version
	UpdateTemplate(ctx context.Context, template *Template) error

	DeleteTemplate(ctx context.Context, id string) error
}

// TemplateRepository provides database operations for templates
type TemplateRepository interface {
	CreateTemplate(ctx context.Context, template *Template) error
	GetTemplateByID(ctx context.Context, id string, version int64) (*Template, error)
	GetTemplateLatestVersion(ctx context.Context, id string) (int64, error)
	GetTemplates(ctx context.Context, status string) ([]*Template, error)

	// UpdateTemplate inserts the next version of the template
	UpdateTemplate(ctx context.Context, template *Template) error

	// DeleteTemplate soft deletes every version
	DeleteTemplate(ctx context.Context, id string) error
}
