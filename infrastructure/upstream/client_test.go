package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/domain/forms"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(DefaultConfig(server.URL), observability.NewCollector("obras_test"), zap.NewNop()), server
}

func TestCreateReturnsStoredRecord(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/obras", r.URL.Path)

		var payload forms.Record
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Praça Nova", payload["nome"])

		payload["id"] = "42"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(payload)
	})

	record, err := client.Create(context.Background(), ports.EntityProjects, forms.Record{"nome": "Praça Nova"})
	require.NoError(t, err)
	assert.Equal(t, "42", record["id"])
}

func TestCreateConflictMapsToConflictError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})

	_, err := client.Create(context.Background(), ports.EntityFolders, forms.Record{"nome": "Duplicada"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestUpdateSendsPatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/obras/7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	err := client.Update(context.Background(), ports.EntityProjects, "7", forms.Record{"nome": "Novo"})
	assert.NoError(t, err)
}

func TestListPassesPagination(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("page_size"))
		assert.Equal(t, "escola", r.URL.Query().Get("search"))

		json.NewEncoder(w).Encode(ports.ListResult{
			Items:      []forms.Record{{"id": "1"}},
			TotalItems: 26,
			TotalPages: 2,
		})
	})

	result, err := client.List(context.Background(), ports.EntityProjects, ports.ListParams{Page: 2, PageSize: 25, Search: "escola"})
	require.NoError(t, err)
	assert.Equal(t, 26, result.TotalItems)
	assert.Len(t, result.Items, 1)
}

func TestServerErrorMapsToUpstream(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetDetails(context.Background(), ports.EntityProjects, "1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUpstream))
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		client.GetDetails(ctx, ports.EntityProjects, "1")
	}

	_, err := client.GetDetails(ctx, ports.EntityProjects, "1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestAssociateAndDissociate(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	ctx := context.Background()
	require.NoError(t, client.Associate(ctx, ports.AssociationFiscalProject, "f1", "p1"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/associacoes/fiscal-obra", gotPath)

	require.NoError(t, client.Dissociate(ctx, ports.AssociationFiscalProject, "f1", "p1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
}
