package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"obras-backend/application/services"
	"obras-backend/pkg/common"
	"obras-backend/pkg/utils"
)

// AssociationHandler manages the links between obras and their related
// records (fiscais, empresas, pastas, bairros).
type AssociationHandler struct {
	service *services.AssociationService
	logger  *zap.Logger
}

// NewAssociationHandler creates a new association handler.
func NewAssociationHandler(service *services.AssociationService, logger *zap.Logger) *AssociationHandler {
	return &AssociationHandler{service: service, logger: logger}
}

// AssociationRequest identifies the pair of records being linked.
type AssociationRequest struct {
	ChildID  string `json:"child_id" validate:"required"`
	ParentID string `json:"parent_id" validate:"required"`
}

// Create handles POST /associacoes/{kind}
func (h *AssociationHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var req AssociationRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição inválido")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	if err := h.service.Associate(r.Context(), kind, req.ChildID, req.ParentID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, map[string]interface{}{"linked": true})
}

// Delete handles DELETE /associacoes/{kind}
func (h *AssociationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var req AssociationRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição inválido")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	removed, err := h.service.Dissociate(r.Context(), kind, req.ChildID, req.ParentID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"removed": removed})
}
