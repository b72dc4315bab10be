package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/domain/forms"
	"obras-backend/pkg/brl"
	"obras-backend/pkg/dates"
	"obras-backend/pkg/observability"
)

// projectTracked lists the obra fields watched for edits, in submission
// order. The monetary and date fields get their own equality rules.
var projectTracked = []forms.TrackedField{
	{Name: "nome", Kind: forms.KindDefault},
	{Name: "descricao", Kind: forms.KindDefault},
	{Name: "verba_disponivel", Kind: forms.KindMoney},
	{Name: "data_inicio", Kind: forms.KindDate},
	{Name: "data_previsao", Kind: forms.KindDate},
	{Name: "data_termino", Kind: forms.KindDate},
	{Name: "bairro_id", Kind: forms.KindDefault},
	{Name: "empresa_id", Kind: forms.KindDefault},
	{Name: "status_id", Kind: forms.KindDefault},
	{Name: "pasta_id", Kind: forms.KindDefault},
}

// ProjectService drives the obra forms: create, edit with change detection,
// and fiscal/empresa association management.
type ProjectService struct {
	client   ports.UpstreamClient
	notifier ports.Notifier
	metrics  *observability.Collector
	logger   *zap.Logger
	editFlow *EditFlow
}

// NewProjectService creates the obra submission service.
func NewProjectService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		client:   client,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		editFlow: NewEditFlow(ports.EntityProjects, projectTracked, client, notifier, metrics, logger),
	}
}

// buildForm assembles the obra form with its cross-field date rules.
func (s *ProjectService) buildForm() *forms.Form {
	form := forms.NewForm().
		AddField("nome", true, forms.StringValidator(forms.ValidateProjectName)).
		AddField("descricao", false, nil).
		AddField("verba_disponivel", false, func(v interface{}, _ forms.Record) forms.ValidationResult {
			return forms.ValidateAmount(v)
		}).
		AddField("data_inicio", true, func(v interface{}, r forms.Record) forms.ValidationResult {
			sv, _ := v.(string)
			return forms.ValidateStartBeforeExpected(sv, r.String("data_previsao"))
		}).
		AddField("data_previsao", true, func(v interface{}, r forms.Record) forms.ValidationResult {
			sv, _ := v.(string)
			return forms.ValidateStartBeforeExpected(r.String("data_inicio"), sv)
		}).
		AddField("data_termino", false, func(v interface{}, r forms.Record) forms.ValidationResult {
			sv, _ := v.(string)
			return forms.ValidateEndAfterStart(sv, r.String("data_inicio"))
		}).
		AddField("bairro_id", false, nil).
		AddField("empresa_id", false, nil).
		AddField("status_id", false, nil).
		AddField("pasta_id", false, nil)

	form.DependsOn("data_inicio", "data_previsao", "data_termino")
	form.DependsOn("data_previsao", "data_inicio")
	return form
}

// normalizePayload rewrites user-facing formats into wire formats: currency
// display strings become float amounts and dd/mm/yyyy dates become ISO.
func normalizeProjectPayload(payload forms.Record) forms.Record {
	out := payload.Clone()

	if raw, ok := out["verba_disponivel"].(string); ok {
		if amount, readable := brl.Normalize(raw); readable {
			out["verba_disponivel"] = amount
		}
	}

	for _, field := range []string{"data_inicio", "data_previsao", "data_termino"} {
		if raw, ok := out[field].(string); ok && strings.Contains(raw, "/") {
			if iso := dates.ToISO(raw); iso != "" {
				out[field] = iso
			}
		}
	}
	return out
}

// Create validates and submits a new obra. Returns the stored record.
func (s *ProjectService) Create(ctx context.Context, payload forms.Record) (forms.Record, error) {
	payload = normalizeProjectPayload(payload)

	form := s.buildForm()
	form.Seed(payload)
	if !form.Validate() {
		s.metrics.RecordValidationFailure(ports.EntityProjects)
		return nil, validationError(form)
	}

	record, err := s.client.Create(ctx, ports.EntityProjects, form.Values())
	if err != nil {
		s.metrics.RecordSubmission(ports.EntityProjects, string(StateFailed))
		return nil, err
	}

	s.metrics.RecordSubmission(ports.EntityProjects, string(StateSuccess))
	s.notifier.Success("obra cadastrada")
	return record, nil
}

// Update runs the edit flow: the current upstream record is the original,
// the normalized payload is overlaid on it, and only changed fields are
// patched.
func (s *ProjectService) Update(ctx context.Context, id string, payload forms.Record) (SubmissionState, error) {
	original, err := s.client.GetDetails(ctx, ports.EntityProjects, id)
	if err != nil {
		return StateFailed, err
	}

	form := s.buildForm()
	form.Seed(original)
	for field, value := range normalizeProjectPayload(payload) {
		form.SetField(field, value)
	}

	return s.editFlow.Submit(ctx, id, original, form)
}

// List fetches one page of obras.
func (s *ProjectService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	return s.client.List(ctx, ports.EntityProjects, params)
}

// Get fetches one obra with its history and associated sub-entities.
func (s *ProjectService) Get(ctx context.Context, id string) (forms.Record, error) {
	return s.client.GetDetails(ctx, ports.EntityProjects, id)
}
