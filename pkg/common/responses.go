// Package common holds the HTTP response envelope and pagination helpers
// shared by every REST handler.
package common

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "obras-backend/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MetaInfo contains metadata about the response
type MetaInfo struct {
	RequestID  string          `json:"request_id,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// PaginationInfo mirrors the upstream list contract.
type PaginationInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// RespondJSON sends a success envelope.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// RespondWithMeta sends a success envelope with metadata.
func RespondWithMeta(w http.ResponseWriter, status int, data interface{}, meta *MetaInfo) {
	writeJSON(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
		Meta:    meta,
	})
}

// RespondError sends a plain error envelope.
func RespondError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: errType, Message: message},
	})
}

// RespondAppError maps an application error onto the envelope, carrying the
// field details of validation failures and partial updates.
func RespondAppError(w http.ResponseWriter, err error) {
	var partial *apperrors.PartialUpdateError
	if errors.As(err, &partial) {
		appErr := partial.AsAppError()
		writeJSON(w, appErr.HTTPStatus, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	if appErr := apperrors.GetAppError(err); appErr != nil {
		writeJSON(w, apperrors.HTTPStatusOf(err), APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Code:    appErr.Code,
				Details: appErr.Details,
			},
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, APIResponse{
		Success: false,
		Error:   &ErrorInfo{Type: string(apperrors.ErrorTypeInternal), Message: "erro interno"},
	})
}

// ParseJSONBody parses a JSON request body with a size limit, rejecting
// unknown fields.
func ParseJSONBody(r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, payload APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
