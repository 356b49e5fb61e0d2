package domain

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
)

//go:generate mockgen -destination mocks/mock_visual_resource_service.go -package mocks github.com/agroclimatic/bulletins/internal/domain VisualResourceService
//go:generate mockgen -destination mocks/mock_visual_resource_repository.go -package mocks github.com/agroclimatic/bulletins/internal/domain VisualResourceRepository

type FileType string

const (
	FileTypeIcon       FileType = "icon"
	FileTypeBackground FileType = "background"
	FileTypeLogo       FileType = "logo"
	FileTypeImage      FileType = "image"
)

func (f FileType) Validate() error {
	if !govalidator.IsIn(string(f), string(FileTypeIcon), string(FileTypeBackground), string(FileTypeLogo), string(FileTypeImage)) {
		return fmt.Errorf("invalid file type: %s", f)
	}
	return nil
}

// VisualResource is an uploaded asset that icon, background and image
// fields reference by URL
type VisualResource struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FileType  FileType  `json:"file_type"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

func (v *VisualResource) Validate() error {
	if !govalidator.IsUUID(v.ID) {
		return fmt.Errorf("invalid visual resource: id must be a UUID")
	}
	if v.Name == "" || len(v.Name) > 255 {
		return fmt.Errorf("invalid visual resource: name length must be between 1 and 255")
	}
	if err := v.FileType.Validate(); err != nil {
		return fmt.Errorf("invalid visual resource: %w", err)
	}
	if !isResourceURL(v.FileURL) {
		return fmt.Errorf("invalid visual resource: file_url must be a URL or an absolute path")
	}
	return nil
}

type CreateVisualResourceRequest struct {
	Name     string `json:"name"`
	FileType string `json:"file_type"`
	FileURL  string `json:"file_url"`
}

func (r *CreateVisualResourceRequest) Validate() (*VisualResource, error) {
	resource := &VisualResource{
		ID:       uuid.New().String(),
		Name:     r.Name,
		FileType: FileType(r.FileType),
		FileURL:  r.FileURL,
	}
	if err := resource.Validate(); err != nil {
		return nil, fmt.Errorf("invalid create visual resource request: %w", err)
	}
	return resource, nil
}

type GetVisualResourcesRequest struct {
	FileType string `json:"file_type,omitempty"`
}

func (r *GetVisualResourcesRequest) FromURLParams(queryParams url.Values) error {
	r.FileType = queryParams.Get("file_type")
	if r.FileType != "" {
		if err := FileType(r.FileType).Validate(); err != nil {
			return fmt.Errorf("invalid get visual resources request: %w", err)
		}
	}
	return nil
}

type DeleteVisualResourceRequest struct {
	ID string `json:"id" valid:"required,uuid"`
}

func (r *DeleteVisualResourceRequest) Validate() error {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return fmt.Errorf("invalid delete visual resource request: %w", err)
	}
	return nil
}

type VisualResourceService interface {
	CreateVisualResource(ctx context.Context, resource *VisualResource) error
	GetVisualResources(ctx context.Context, fileType string) ([]*VisualResource, error)
	DeleteVisualResource(ctx context.Context, id string) error
}

type VisualResourceRepository interface {
	CreateVisualResource(ctx context.Context, resource *VisualResource) error
	GetVisualResources(ctx context.Context, fileType string) ([]*VisualResource, error)
	DeleteVisualResource(ctx context.Context, id string) error
}
