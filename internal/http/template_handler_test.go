package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroclimatic/bulletins/internal/domain"
	"github.com/agroclimatic/bulletins/internal/domain/mocks"
	apphttp "github.com/agroclimatic/bulletins/internal/http"
	"github.com/agroclimatic/bulletins/pkg/bulletin"
	"github.com/agroclimatic/bulletins/pkg/logger"
)

func setupTemplateHandlerTest(t *testing.T) (*mocks.MockTemplateService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockTemplateService(ctrl)

	handler := apphttp.NewTemplateHandler(mockService, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mockService, mux
}

func doJSON(t *testing.T, mux http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response
}

func TestTemplateHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().GetTemplates(gomock.Any(), "published").Return([]*domain.Template{
			{ID: uuid.New().String(), Version: 2, Master: bulletin.TemplateMaster{TemplateName: "Semanal"}},
		}, nil)

		w := doJSON(t, mux, http.MethodGet, "/api/templates.list?status=published", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["templates"], 1)
	})

	t.Run("Invalid status", func(t *testing.T) {
		_, mux := setupTemplateHandlerTest(t)
		w := doJSON(t, mux, http.MethodGet, "/api/templates.list?status=gone", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Method not allowed", func(t *testing.T) {
		_, mux := setupTemplateHandlerTest(t)
		w := doJSON(t, mux, http.MethodPost, "/api/templates.list", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("Service error", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().GetTemplates(gomock.Any(), "").Return(nil, errors.New("db down"))

		w := doJSON(t, mux, http.MethodGet, "/api/templates.list", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to get templates", decodeBody(t, w)["error"])
	})
}

func TestTemplateHandler_Get(t *testing.T) {
	id := uuid.New().String()

	t.Run("Success with version", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().GetTemplateByID(gomock.Any(), id, int64(3)).Return(&domain.Template{ID: id, Version: 3}, nil)

		w := doJSON(t, mux, http.MethodGet, "/api/templates.get?id="+id+"&version=3", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		template := decodeBody(t, w)["template"].(map[string]interface{})
		assert.Equal(t, float64(3), template["version"])
	})

	t.Run("Not found", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().GetTemplateByID(gomock.Any(), id, int64(0)).Return(nil, &domain.ErrTemplateNotFound{Message: "template not found"})

		w := doJSON(t, mux, http.MethodGet, "/api/templates.get?id="+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Missing id", func(t *testing.T) {
		_, mux := setupTemplateHandlerTest(t)
		w := doJSON(t, mux, http.MethodGet, "/api/templates.get", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTemplateHandler_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().CreateTemplate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ interface{}, tpl *domain.Template) error {
			assert.Equal(t, "Boletín semanal", tpl.Master.TemplateName)
			assert.Equal(t, "draft", tpl.Master.Status)
			return nil
		})

		w := doJSON(t, mux, http.MethodPost, "/api/templates.create", domain.CreateTemplateRequest{
			Master: bulletin.TemplateMaster{TemplateName: "Boletín semanal"},
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		template := decodeBody(t, w)["template"].(map[string]interface{})
		assert.NotEmpty(t, template["id"])
	})

	t.Run("Invalid body", func(t *testing.T) {
		_, mux := setupTemplateHandlerTest(t)
		w := doJSON(t, mux, http.MethodPost, "/api/templates.create", "{not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, w)["error"])
	})

	t.Run("Validation error", func(t *testing.T) {
		_, mux := setupTemplateHandlerTest(t)
		w := doJSON(t, mux, http.MethodPost, "/api/templates.create", domain.CreateTemplateRequest{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "template_name is required")
	})
}

func TestTemplateHandler_Update(t *testing.T) {
	id := uuid.New().String()
	req := domain.UpdateTemplateRequest{ID: id, Master: bulletin.TemplateMaster{TemplateName: "Semanal"}}

	t.Run("Success", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(nil)

		w := doJSON(t, mux, http.MethodPost, "/api/templates.update", req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(&domain.ErrTemplateNotFound{Message: "template not found"})

		w := doJSON(t, mux, http.MethodPost, "/api/templates.update", req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTemplateHandler_Delete(t *testing.T) {
	id := uuid.New().String()

	t.Run("Success", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().DeleteTemplate(gomock.Any(), id).Return(nil)

		w := doJSON(t, mux, http.MethodPost, "/api/templates.delete", map[string]string{"id": id})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["success"])
	})

	t.Run("Invalid id", func(t *testing.T) {
		_, mux := setupTemplateHandlerTest(t)
		w := doJSON(t, mux, http.MethodPost, "/api/templates.delete", map[string]string{"id": "abc"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Service error", func(t *testing.T) {
		svc, mux := setupTemplateHandlerTest(t)
		svc.EXPECT().DeleteTemplate(gomock.Any(), id).Return(errors.New("db down"))

		w := doJSON(t, mux, http.MethodPost, "/api/templates.delete", map[string]string{"id": id})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
