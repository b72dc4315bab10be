package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// PartialUpdateError reports the outcome of a multi-field update where each
// changed field is patched upstream independently. Failed carries one error
// per field that could not be updated; Applied lists the fields that went
// through. There is no rollback: callers surface both sets to the user.
type PartialUpdateError struct {
	Entity  string
	ID      string
	Applied []string
	Failed  map[string]error
}

// NewPartialUpdateError creates a partial update error
func NewPartialUpdateError(entity, id string) *PartialUpdateError {
	return &PartialUpdateError{
		Entity: entity,
		ID:     id,
		Failed: make(map[string]error),
	}
}

// AddApplied records a field that was successfully patched
func (e *PartialUpdateError) AddApplied(field string) {
	e.Applied = append(e.Applied, field)
}

// AddFailed records a field whose patch failed
func (e *PartialUpdateError) AddFailed(field string, err error) {
	e.Failed[field] = err
}

// HasFailures reports whether any field patch failed
func (e *PartialUpdateError) HasFailures() bool {
	return len(e.Failed) > 0
}

// FailedFields returns the failed field names in sorted order
func (e *PartialUpdateError) FailedFields() []string {
	fields := make([]string, 0, len(e.Failed))
	for f := range e.Failed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Error implements the error interface
func (e *PartialUpdateError) Error() string {
	return fmt.Sprintf("update of %s %s failed for fields: %s",
		e.Entity, e.ID, strings.Join(e.FailedFields(), ", "))
}

// AsAppError converts the partial failure into the response error shape
func (e *PartialUpdateError) AsAppError() *AppError {
	return &AppError{
		Type:       ErrorTypeUpstream,
		Message:    e.Error(),
		HTTPStatus: http.StatusBadGateway,
		Details: map[string]interface{}{
			"applied_fields": e.Applied,
			"failed_fields":  e.FailedFields(),
		},
	}
}
