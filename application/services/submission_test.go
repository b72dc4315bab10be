package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/domain/forms"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

// fakeClient records upstream calls and can fail specific fields.
type fakeClient struct {
	mu          sync.Mutex
	records     map[string]forms.Record
	updates     []forms.Record
	failFields  map[string]error
	createErr   error
	createdWith forms.Record
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		records:    make(map[string]forms.Record),
		failFields: make(map[string]error),
	}
}

func (f *fakeClient) Create(_ context.Context, _ string, payload forms.Record) (forms.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdWith = payload
	stored := payload.Clone()
	stored["id"] = "new-id"
	return stored, nil
}

func (f *fakeClient) Update(_ context.Context, _ string, _ string, partial forms.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, partial)
	for field := range partial {
		if err, ok := f.failFields[field]; ok {
			return err
		}
	}
	return nil
}

func (f *fakeClient) List(_ context.Context, _ string, _ ports.ListParams) (*ports.ListResult, error) {
	return &ports.ListResult{}, nil
}

func (f *fakeClient) GetDetails(_ context.Context, _ string, id string) (forms.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record, ok := f.records[id]; ok {
		return record.Clone(), nil
	}
	return nil, apperrors.NewNotFoundError("registro")
}

func (f *fakeClient) Associate(_ context.Context, _, _, _ string) error   { return nil }
func (f *fakeClient) Dissociate(_ context.Context, _, _, _ string) error { return nil }

func (f *fakeClient) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	confirm   bool
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Confirm(string) bool { return n.confirm }

func newProjectServiceForTest(client *fakeClient, notifier *recordingNotifier) *ProjectService {
	return NewProjectService(client, notifier, observability.NewCollector("obras_test"), zap.NewNop())
}

func validProject() forms.Record {
	return forms.Record{
		"nome":             "Reforma da Escola Municipal",
		"descricao":        "pintura e telhado",
		"verba_disponivel": 150000.0,
		"data_inicio":      "2024-01-10",
		"data_previsao":    "2024-09-30",
	}
}

func TestProjectCreateValidatesBeforeSubmitting(t *testing.T) {
	client := newFakeClient()
	svc := newProjectServiceForTest(client, &recordingNotifier{})

	_, err := svc.Create(context.Background(), forms.Record{"nome": "ab"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, client.createdWith, "invalid form must not reach the upstream")
}

func TestProjectCreateNormalizesCurrencyAndDates(t *testing.T) {
	client := newFakeClient()
	svc := newProjectServiceForTest(client, &recordingNotifier{})

	payload := validProject()
	payload["verba_disponivel"] = "R$ 1.500,00"
	payload["data_inicio"] = "10/01/2024"

	record, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "new-id", record["id"])
	assert.Equal(t, 1500.0, client.createdWith["verba_disponivel"])
	assert.Equal(t, "2024-01-10", client.createdWith["data_inicio"])
}

func TestProjectCreateSurfacesConflict(t *testing.T) {
	client := newFakeClient()
	client.createErr = apperrors.NewConflictError("registro já existe")
	svc := newProjectServiceForTest(client, &recordingNotifier{})

	_, err := svc.Create(context.Background(), validProject())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestProjectUpdateShortCircuitsWhenNothingChanged(t *testing.T) {
	client := newFakeClient()
	client.records["7"] = validProject()
	notifier := &recordingNotifier{}
	svc := newProjectServiceForTest(client, notifier)

	state, err := svc.Update(context.Background(), "7", validProject())
	require.NoError(t, err)
	assert.Equal(t, StateNoChanges, state)
	assert.Zero(t, client.updateCount(), "no upstream call for an unchanged record")
	assert.NotEmpty(t, notifier.successes)
}

func TestProjectUpdatePatchesOnlyChangedFields(t *testing.T) {
	client := newFakeClient()
	client.records["7"] = validProject()
	svc := newProjectServiceForTest(client, &recordingNotifier{})

	edited := validProject()
	edited["nome"] = "Reforma da Escola Estadual"
	edited["data_previsao"] = "2024-12-15"

	state, err := svc.Update(context.Background(), "7", edited)
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, state)
	require.Equal(t, 2, client.updateCount())

	patched := map[string]bool{}
	for _, update := range client.updates {
		require.Len(t, update, 1, "each patch carries exactly one field")
		for field := range update {
			patched[field] = true
		}
	}
	assert.True(t, patched["nome"])
	assert.True(t, patched["data_previsao"])
}

func TestProjectUpdateMoneyWithinToleranceIsUnchanged(t *testing.T) {
	client := newFakeClient()
	client.records["7"] = validProject()
	svc := newProjectServiceForTest(client, &recordingNotifier{})

	edited := validProject()
	edited["verba_disponivel"] = "R$ 150.000,00"

	state, err := svc.Update(context.Background(), "7", edited)
	require.NoError(t, err)
	assert.Equal(t, StateNoChanges, state)
}

func TestProjectUpdateReportsPartialFailure(t *testing.T) {
	client := newFakeClient()
	client.records["7"] = validProject()
	client.failFields["nome"] = apperrors.NewUpstreamError("PATCH /obras/7", 502, nil)
	notifier := &recordingNotifier{}
	svc := newProjectServiceForTest(client, notifier)

	edited := validProject()
	edited["nome"] = "Outro Nome de Obra"
	edited["descricao"] = "nova descrição"

	state, err := svc.Update(context.Background(), "7", edited)
	assert.Equal(t, StateFailed, state)
	require.Error(t, err)

	var partial *apperrors.PartialUpdateError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"nome"}, partial.FailedFields())
	assert.Contains(t, partial.Applied, "descricao")
	assert.NotEmpty(t, notifier.errors)
}

func TestProjectUpdateRejectsInvalidEdit(t *testing.T) {
	client := newFakeClient()
	client.records["7"] = validProject()
	svc := newProjectServiceForTest(client, &recordingNotifier{})

	edited := validProject()
	edited["data_inicio"] = "2025-01-01" // after the expected completion

	state, err := svc.Update(context.Background(), "7", edited)
	assert.Equal(t, StateFailed, state)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, client.updateCount())
}
