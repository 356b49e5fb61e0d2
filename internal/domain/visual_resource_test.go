package domain

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateVisualResourceRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateVisualResourceRequest
		wantErr string
	}{
		{name: "icon", req: CreateVisualResourceRequest{Name: "Sol", FileType: "icon", FileURL: "https://cdn.example.org/sun.svg"}},
		{name: "relative path", req: CreateVisualResourceRequest{Name: "Fondo", FileType: "background", FileURL: "/assets/bg/field.jpg"}},
		{name: "bad type", req: CreateVisualResourceRequest{Name: "x", FileType: "video", FileURL: "/a.mp4"}, wantErr: "invalid file type: video"},
		{name: "missing name", req: CreateVisualResourceRequest{FileType: "logo", FileURL: "/logo.png"}, wantErr: "name length"},
		{name: "bad url", req: CreateVisualResourceRequest{Name: "x", FileType: "logo", FileURL: "not a url"}, wantErr: "file_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource, err := tt.req.Validate()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, isUUID(resource.ID))
			assert.Equal(t, FileType(tt.req.FileType), resource.FileType)
		})
	}
}

func TestGetVisualResourcesRequest_FromURLParams(t *testing.T) {
	var req GetVisualResourcesRequest
	require.NoError(t, req.FromURLParams(url.Values{"file_type": {"background"}}))
	assert.Equal(t, "background", req.FileType)
	assert.Error(t, req.FromURLParams(url.Values{"file_type": {"pdf"}}))
}

func TestDeleteVisualResourceRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DeleteVisualResourceRequest{ID: uuid.New().String()}).Validate())
	assert.Error(t, (&DeleteVisualResourceRequest{ID: "1"}).Validate())
}
