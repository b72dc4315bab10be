package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"obras-backend/domain/forms"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

func newCatalogServiceForTest(client *fakeClient, notifier *recordingNotifier) *CatalogService {
	return NewCatalogService(client, notifier, observability.NewCollector("obras_test"), zap.NewNop())
}

func TestCatalogSupports(t *testing.T) {
	svc := newCatalogServiceForTest(newFakeClient(), &recordingNotifier{})

	for _, entity := range []string{"fiscais", "pastas", "bairros", "empresas", "status"} {
		assert.True(t, svc.Supports(entity), entity)
	}
	assert.False(t, svc.Supports("obras"), "obras have their own service")
	assert.False(t, svc.Supports("qualquer"))
}

func TestCatalogCreateValidatesFiscal(t *testing.T) {
	client := newFakeClient()
	svc := newCatalogServiceForTest(client, &recordingNotifier{})

	_, err := svc.Create(context.Background(), "fiscais", forms.Record{
		"nome": "Maria Souza",
		"cpf":  "123", // too short
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, client.createdWith, "nothing reaches upstream on invalid input")

	record, err := svc.Create(context.Background(), "fiscais", forms.Record{
		"nome":     "Maria Souza",
		"cpf":      "12345678901",
		"email":    "maria@prefeitura.gov.br",
		"telefone": "11912345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", record["id"])
}

func TestCatalogCreateUnknownEntity(t *testing.T) {
	svc := newCatalogServiceForTest(newFakeClient(), &recordingNotifier{})

	_, err := svc.Create(context.Background(), "veiculos", forms.Record{"nome": "caminhão"})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCatalogUpdateOnlyChangedFields(t *testing.T) {
	client := newFakeClient()
	client.records["b1"] = forms.Record{"id": "b1", "nome": "Centro"}
	svc := newCatalogServiceForTest(client, &recordingNotifier{})

	state, err := svc.Update(context.Background(), "bairros", "b1", forms.Record{"nome": "Centro"})
	require.NoError(t, err)
	assert.Equal(t, StateNoChanges, state)
	assert.Zero(t, client.updateCount())

	state, err = svc.Update(context.Background(), "bairros", "b1", forms.Record{"nome": "Centro Histórico"})
	require.NoError(t, err)
	assert.Equal(t, StateSuccess, state)
	assert.Equal(t, 1, client.updateCount())
}

func TestAssociateRejectsUnknownKind(t *testing.T) {
	svc := NewAssociationService(newFakeClient(), &recordingNotifier{}, observability.NewCollector("obras_test"), zap.NewNop())

	err := svc.Associate(context.Background(), "qualquer-coisa", "1", "2")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	err = svc.Associate(context.Background(), "fiscal-obra", "", "2")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	err = svc.Associate(context.Background(), "fiscal-obra", "1", "2")
	assert.NoError(t, err)
}

func TestDissociateHonorsConfirmation(t *testing.T) {
	notifier := &recordingNotifier{confirm: false}
	svc := NewAssociationService(newFakeClient(), notifier, observability.NewCollector("obras_test"), zap.NewNop())

	removed, err := svc.Dissociate(context.Background(), "fiscal-obra", "1", "2")
	require.NoError(t, err)
	assert.False(t, removed, "declined confirmation leaves the link intact")

	notifier.confirm = true
	removed, err = svc.Dissociate(context.Background(), "fiscal-obra", "1", "2")
	require.NoError(t, err)
	assert.True(t, removed)
}
