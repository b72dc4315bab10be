package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"obras-backend/application/services"
	"obras-backend/domain/forms"
	"obras-backend/pkg/common"
)

// UserHandler handles usuário-related HTTP requests.
type UserHandler struct {
	service *services.UserService
	logger  *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service *services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// Create handles POST /usuarios
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	// A senha nunca volta na resposta.
	delete(record, "senha")
	common.RespondJSON(w, http.StatusCreated, record)
}

// Update handles PATCH /usuarios/{userID}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	payload := forms.Record{}
	if err := common.ParseJSONBody(r, &payload, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "corpo da requisição inválido")
		return
	}

	state, err := h.service.Update(r.Context(), userID, payload)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"state": string(state)})
}

// List handles GET /usuarios
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	params := common.ExtractListParams(r)

	result, err := h.service.List(r.Context(), params)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondWithMeta(w, http.StatusOK, result.Items, common.PaginationMeta(params, result))
}

// Get handles GET /usuarios/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	record, err := h.service.Get(r.Context(), userID)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, record)
}
