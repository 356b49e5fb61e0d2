package domain

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclimatic/bulletins/pkg/bulletin"
)

func sampleContent(t *testing.T) bulletin.TemplateContent {
	var content bulletin.TemplateContent
	require.NoError(t, json.Unmarshal([]byte(`{
		"style_config": {"font_size": 14},
		"header_config": {"fields": [{"field_id": "logo", "type": "image", "value": "/logo.png"}]},
		"sections": [
			{"section_id": "s1", "blocks": [{"fields": [{"field_id": "title", "type": "text", "bulletin": true, "value": "Boletín"}]}]}
		]
	}`), &content))
	return content
}

func validTemplate(t *testing.T) *Template {
	return &Template{
		ID:      uuid.New().String(),
		Version: 1,
		Master:  bulletin.TemplateMaster{TemplateName: "Boletín semanal", Status: "draft"},
		Content: sampleContent(t),
	}
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Template)
		wantErr string
	}{
		{name: "valid", mutate: func(*Template) {}},
		{name: "missing id", mutate: func(tpl *Template) { tpl.ID = "" }, wantErr: "id is required"},
		{name: "id not uuid", mutate: func(tpl *Template) { tpl.ID = "weekly" }, wantErr: "id must be a UUID"},
		{name: "zero version", mutate: func(tpl *Template) { tpl.Version = 0 }, wantErr: "version must be positive"},
		{name: "missing name", mutate: func(tpl *Template) { tpl.Master.TemplateName = "" }, wantErr: "template_name is required"},
		{name: "bad status", mutate: func(tpl *Template) { tpl.Master.Status = "live" }, wantErr: "invalid template status: live"},
		{
			name: "field without id",
			mutate: func(tpl *Template) {
				tpl.Content.Sections[0].Blocks[0].Fields[0].FieldID = ""
			},
			wantErr: "sections[0].blocks[0].fields[0]: field_id is required",
		},
		{
			name: "header field without type",
			mutate: func(tpl *Template) {
				tpl.Content.HeaderConfig.Fields[0].Type = ""
			},
			wantErr: "header_config.fields[0]: type is required",
		},
		{
			name: "duplicate section ids",
			mutate: func(tpl *Template) {
				tpl.Content.Sections = append(tpl.Content.Sections, tpl.Content.Sections[0])
			},
			wantErr: `duplicate section_id "s1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := validTemplate(t)
			tt.mutate(tpl)
			err := tpl.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTemplate_Document(t *testing.T) {
	tpl := validTemplate(t)
	tpl.Version = 3
	tpl.CommitMessage = "new logo"

	doc := tpl.Document()
	assert.Equal(t, 3, doc.Version.VersionNum)
	assert.Equal(t, "new logo", doc.Version.CommitMessage)
	assert.Equal(t, "Boletín semanal", doc.Master.TemplateName)
	assert.Len(t, doc.Version.Content.Sections, 1)
}

func TestTemplate_Status(t *testing.T) {
	assert.Equal(t, TemplateStatusDraft, (&Template{}).Status())
	tpl := &Template{Master: bulletin.TemplateMaster{Status: "published"}}
	assert.Equal(t, TemplateStatusPublished, tpl.Status())
}

func TestCreateTemplateRequest_Validate(t *testing.T) {
	req := CreateTemplateRequest{
		Master:  bulletin.TemplateMaster{TemplateName: "Boletín"},
		Content: sampleContent(t),
	}

	tpl, err := req.Validate()
	require.NoError(t, err)
	assert.True(t, isUUID(tpl.ID))
	assert.Equal(t, int64(1), tpl.Version)
	assert.Equal(t, "draft", tpl.Master.Status)

	req.Master.TemplateName = ""
	_, err = req.Validate()
	assert.ErrorContains(t, err, "invalid create template request")
}

func TestUpdateTemplateRequest_Validate(t *testing.T) {
	id := uuid.New().String()
	req := UpdateTemplateRequest{
		ID:      id,
		Master:  bulletin.TemplateMaster{TemplateName: "Boletín", Status: "published"},
		Content: sampleContent(t),
	}

	tpl, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, id, tpl.ID)
	assert.Equal(t, int64(0), tpl.Version)

	req.ID = ""
	_, err = req.Validate()
	assert.ErrorContains(t, err, "invalid update template request")
}

func TestGetTemplateRequest_FromURLParams(t *testing.T) {
	id := uuid.New().String()

	var req GetTemplateRequest
	require.NoError(t, req.FromURLParams(url.Values{"id": {id}, "version": {"2"}}))
	assert.Equal(t, int64(2), req.Version)

	assert.Error(t, req.FromURLParams(url.Values{}))
	assert.Error(t, req.FromURLParams(url.Values{"id": {"nope"}}))
	assert.Error(t, req.FromURLParams(url.Values{"id": {id}, "version": {"x"}}))
	assert.Error(t, req.FromURLParams(url.Values{"id": {id}, "version": {"-1"}}))
}

func TestGetTemplatesRequest_FromURLParams(t *testing.T) {
	var req GetTemplatesRequest
	require.NoError(t, req.FromURLParams(url.Values{"status": {"published"}}))
	assert.Equal(t, "published", req.Status)

	require.NoError(t, req.FromURLParams(url.Values{}))
	assert.Error(t, req.FromURLParams(url.Values{"status": {"deleted"}}))
}

func TestDeleteTemplateRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DeleteTemplateRequest{ID: uuid.New().String()}).Validate())
	assert.Error(t, (&DeleteTemplateRequest{}).Validate())
	assert.Error(t, (&DeleteTemplateRequest{ID: "abc"}).Validate())
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
