package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"obras-backend/application/services"
	"obras-backend/domain/forms"
	"obras-backend/pkg/common"
)

// CatalogHandler serves the auxiliary registries (fiscais, pastas, bairros,
// empresas, status) through a single set of routes keyed by entity name.
type CatalogHandler struct {
	service *services.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service *services.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, logger: logger}
}

// Create handles POST /{entity}
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	if !h.service.Supports(entity) {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "entidade desconhecida")
		return
	}

	payload := forms.Record{}
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição inválido")
		return
	}

	record, err := h.service.Create(r.Context(), entity, payload)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, record)
}

// Update handles PATCH /{entity}/{itemID}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	itemID := chi.URLParam(r, "itemID")
	if !h.service.Supports(entity) {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "entidade desconhecida")
		return
	}

	payload := forms.Record{}
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição inválido")
		return
	}

	state, err := h.service.Update(r.Context(), entity, itemID, payload)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"state": string(state)})
}

// List handles GET /{entity}
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	if !h.service.Supports(entity) {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "entidade desconhecida")
		return
	}

	params := common.ExtractListParams(r)
	result, err := h.service.List(r.Context(), entity, params)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondWithMeta(w, http.StatusOK, result.Items, common.PaginationMeta(params, result))
}

// Get handles GET /{entity}/{itemID}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	itemID := chi.URLParam(r, "itemID")
	if !h.service.Supports(entity) {
		common.RespondError(w, http.StatusNotFound, "NOT_FOUND", "entidade desconhecida")
		return
	}

	record, err := h.service.Get(r.Context(), entity, itemID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, record)
}
