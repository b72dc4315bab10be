package services

import (
	"context"

	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/domain/forms"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

// catalogSpec describes one of the simpler lookup entities managed by the
// dashboard: fiscais, pastas, bairros, empresas and status.
type catalogSpec struct {
	entity    string
	label     string
	buildForm func() *forms.Form
	tracked   []forms.TrackedField
}

var catalogSpecs = map[string]catalogSpec{
	ports.EntityFiscais: {
		entity: ports.EntityFiscais,
		label:  "fiscal",
		buildForm: func() *forms.Form {
			return forms.NewForm().
				AddField("nome", true, forms.StringValidator(forms.ValidateFullName)).
				AddField("cpf", true, forms.StringValidator(forms.ValidateCPF)).
				AddField("email", true, forms.StringValidator(forms.ValidateEmail)).
				AddField("telefone", true, forms.StringValidator(forms.ValidatePhone))
		},
		tracked: []forms.TrackedField{
			{Name: "nome"}, {Name: "cpf"}, {Name: "email"}, {Name: "telefone"},
		},
	},
	ports.EntityFolders: {
		entity: ports.EntityFolders,
		label:  "pasta",
		buildForm: func() *forms.Form {
			return forms.NewForm().
				AddField("nome", true, forms.StringValidator(forms.ValidateName)).
				AddField("descricao", false, nil)
		},
		tracked: []forms.TrackedField{{Name: "nome"}, {Name: "descricao"}},
	},
	ports.EntityBairros: {
		entity: ports.EntityBairros,
		label:  "bairro",
		buildForm: func() *forms.Form {
			return forms.NewForm().
				AddField("nome", true, forms.StringValidator(forms.ValidateName))
		},
		tracked: []forms.TrackedField{{Name: "nome"}},
	},
	ports.EntityEmpresas: {
		entity: ports.EntityEmpresas,
		label:  "empresa",
		buildForm: func() *forms.Form {
			return forms.NewForm().
				AddField("nome", true, forms.StringValidator(forms.ValidateName)).
				AddField("email", false, forms.StringValidator(forms.ValidateEmail)).
				AddField("telefone", false, forms.StringValidator(forms.ValidatePhone))
		},
		tracked: []forms.TrackedField{{Name: "nome"}, {Name: "email"}, {Name: "telefone"}},
	},
	ports.EntityStatuses: {
		entity: ports.EntityStatuses,
		label:  "status",
		buildForm: func() *forms.Form {
			return forms.NewForm().
				AddField("nome", true, forms.StringValidator(forms.ValidateName)).
				AddField("cor", false, nil)
		},
		tracked: []forms.TrackedField{{Name: "nome"}, {Name: "cor"}},
	},
}

// CatalogService drives the lookup-entity forms that share one simple
// create/edit shape.
type CatalogService struct {
	client   ports.UpstreamClient
	notifier ports.Notifier
	metrics  *observability.Collector
	logger   *zap.Logger
	flows    map[string]*EditFlow
}

// NewCatalogService creates the lookup-entity submission service.
func NewCatalogService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *CatalogService {
	flows := make(map[string]*EditFlow, len(catalogSpecs))
	for entity, spec := range catalogSpecs {
		flows[entity] = NewEditFlow(entity, spec.tracked, client, notifier, metrics, logger)
	}
	return &CatalogService{
		client:   client,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		flows:    flows,
	}
}

// Supports reports whether entity is one of the catalog entities.
func (s *CatalogService) Supports(entity string) bool {
	_, ok := catalogSpecs[entity]
	return ok
}

// Create validates and submits a new catalog record.
func (s *CatalogService) Create(ctx context.Context, entity string, payload forms.Record) (forms.Record, error) {
	spec, ok := catalogSpecs[entity]
	if !ok {
		return nil, apperrors.NewNotFoundError("entidade " + entity)
	}

	form := spec.buildForm()
	form.Seed(payload)
	if !form.Validate() {
		s.metrics.RecordValidationFailure(entity)
		return nil, validationError(form)
	}

	record, err := s.client.Create(ctx, entity, form.Values())
	if err != nil {
		s.metrics.RecordSubmission(entity, string(StateFailed))
		return nil, err
	}

	s.metrics.RecordSubmission(entity, string(StateSuccess))
	s.notifier.Success(spec.label + " cadastrado")
	return record, nil
}

// Update runs the edit flow for one catalog record.
func (s *CatalogService) Update(ctx context.Context, entity, id string, payload forms.Record) (SubmissionState, error) {
	spec, ok := catalogSpecs[entity]
	if !ok {
		return StateFailed, apperrors.NewNotFoundError("entidade " + entity)
	}

	original, err := s.client.GetDetails(ctx, entity, id)
	if err != nil {
		return StateFailed, err
	}

	form := spec.buildForm()
	form.Seed(original)
	for field, value := range payload {
		form.SetField(field, value)
	}

	return s.flows[entity].Submit(ctx, id, original, form)
}

// List fetches one page of catalog records.
func (s *CatalogService) List(ctx context.Context, entity string, params ports.ListParams) (*ports.ListResult, error) {
	if !s.Supports(entity) {
		return nil, apperrors.NewNotFoundError("entidade " + entity)
	}
	return s.client.List(ctx, entity, params)
}

// Get fetches one catalog record.
func (s *CatalogService) Get(ctx context.Context, entity, id string) (forms.Record, error) {
	if !s.Supports(entity) {
		return nil, apperrors.NewNotFoundError("entidade " + entity)
	}
	return s.client.GetDetails(ctx, entity, id)
}
