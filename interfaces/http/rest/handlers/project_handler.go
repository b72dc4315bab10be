// Package handlers exposes the dashboard operations over REST.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"obras-backend/application/services"
	"obras-backend/domain/forms"
	"obras-backend/pkg/common"
)

const maxBodyBytes = 1 << 20

// ProjectHandler handles obra-related HTTP requests.
type ProjectHandler struct {
	service *services.ProjectService
	logger  *zap.Logger
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(service *services.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{service: service, logger: logger}
}

// Create handles POST /obras
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload := forms.Record{}
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição inválido")
		return
	}

	record, err := h.service.Create(r.Context(), payload)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, record)
}

// Update handles PATCH /obras/{projectID}
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	payload := forms.Record{}
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição inválido")
		return
	}

	state, err := h.service.Update(r.Context(), projectID, payload)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"state": string(state)})
}

// List handles GET /obras
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractListParams(r)

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondWithMeta(w, http.StatusOK, result.Items, common.PaginationMeta(params, result))
}

// Get handles GET /obras/{projectID}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	record, err := h.service.Get(r.Context(), projectID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, record)
}
