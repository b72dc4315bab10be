// Package ports defines the interfaces the application layer depends on.
// Implementations live under infrastructure.
package ports

import (
	"context"

	"obras-backend/domain/forms"
)

// Entity names accepted by the upstream municipal API.
const (
	EntityProjects  = "obras"
	EntityUsers     = "usuarios"
	EntityFiscais   = "fiscais"
	EntityFolders   = "pastas"
	EntityBairros   = "bairros"
	EntityEmpresas  = "empresas"
	EntityStatuses  = "status"
)

// Association kinds accepted by the upstream municipal API.
const (
	AssociationFiscalProject  = "fiscal-obra"
	AssociationEmpresaProject = "empresa-obra"
	AssociationProjectFolder  = "obra-pasta"
	AssociationProjectBairro  = "obra-bairro"
)

// ListParams carries pagination and search for list calls.
type ListParams struct {
	Page     int
	PageSize int
	Search   string
}

// ListResult is one page of upstream records.
type ListResult struct {
	Items      []forms.Record `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// UpstreamClient is the municipal REST API consumed by every submission
// flow. Payloads are passed through unchanged apart from the normalization
// the form core applies before submission.
type UpstreamClient interface {
	// Create posts a new entity and returns the stored record, including
	// the assigned id. A duplicate yields a conflict error.
	Create(ctx context.Context, entity string, payload forms.Record) (forms.Record, error)

	// Update patches a single entity with a partial payload.
	Update(ctx context.Context, entity, id string, partial forms.Record) error

	// List fetches one page of entities.
	List(ctx context.Context, entity string, params ListParams) (*ListResult, error)

	// GetDetails fetches one entity with its nested arrays (history,
	// associated sub-entities).
	GetDetails(ctx context.Context, entity, id string) (forms.Record, error)

	// Associate links a child entity to a parent.
	Associate(ctx context.Context, kind, childID, parentID string) error

	// Dissociate removes a child-parent link.
	Dissociate(ctx context.Context, kind, childID, parentID string) error
}
