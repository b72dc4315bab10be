package services

import (
	"context"

	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/domain/forms"
	"obras-backend/pkg/observability"
)

var userTracked = []forms.TrackedField{
	{Name: "nome", Kind: forms.KindDefault},
	{Name: "email", Kind: forms.KindDefault},
	{Name: "telefone", Kind: forms.KindDefault},
}

// UserService drives the user account forms. Passwords are validated and
// strength-scored on create; edits never patch the password through the
// change-detection flow.
type UserService struct {
	client   ports.UpstreamClient
	notifier ports.Notifier
	metrics  *observability.Collector
	logger   *zap.Logger
	editFlow *EditFlow
}

// NewUserService creates the user submission service.
func NewUserService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		client:   client,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger,
		editFlow: NewEditFlow(ports.EntityUsers, userTracked, client, notifier, metrics, logger),
	}
}

func (s *UserService) createForm() *forms.Form {
	return NewUserEditForm().
		AddField("senha", true, forms.StringValidator(forms.ValidatePassword))
}

// NewUserEditForm builds the password-less user form shared by edit mode.
func NewUserEditForm() *forms.Form {
	return forms.NewForm().
		AddField("nome", true, forms.StringValidator(forms.ValidateFullName)).
		AddField("email", true, forms.StringValidator(forms.ValidateEmail)).
		AddField("telefone", true, forms.StringValidator(forms.ValidatePhone))
}

// Create validates and submits a new user.
func (s *UserService) Create(ctx context.Context, payload forms.Record) (forms.Record, error) {
	if raw, ok := payload["telefone"].(string); ok {
		payload = payload.Clone()
		payload["telefone"] = forms.MaskPhone(raw)
	}

	form := s.createForm()
	form.Seed(payload)
	if !form.Validate() {
		s.metrics.RecordValidationFailure(ports.EntityUsers)
		return nil, validationError(form)
	}

	record, err := s.client.Create(ctx, ports.EntityUsers, form.Values())
	if err != nil {
		s.metrics.RecordSubmission(ports.EntityUsers, string(StateFailed))
		return nil, err
	}

	s.metrics.RecordSubmission(ports.EntityUsers, string(StateSuccess))
	s.notifier.Success("usuário cadastrado")
	return record, nil
}

// Update runs the edit flow over the user profile fields.
func (s *UserService) Update(ctx context.Context, id string, payload forms.Record) (SubmissionState, error) {
	original, err := s.client.GetDetails(ctx, ports.EntityUsers, id)
	if err != nil {
		return StateFailed, err
	}

	form := NewUserEditForm()
	form.Seed(original)
	for field, value := range payload {
		if field == "senha" {
			continue
		}
		if field == "telefone" {
			if raw, ok := value.(string); ok {
				value = forms.MaskPhone(raw)
			}
		}
		form.SetField(field, value)
	}

	return s.editFlow.Submit(ctx, id, original, form)
}

// List fetches one page of users.
func (s *UserService) List(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	return s.client.List(ctx, ports.EntityUsers, params)
}

// Get fetches one user record.
func (s *UserService) Get(ctx context.Context, id string) (forms.Record, error) {
	return s.client.GetDetails(ctx, ports.EntityUsers, id)
}
