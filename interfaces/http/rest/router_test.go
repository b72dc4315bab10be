package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/application/services"
	"obras-backend/domain/forms"
	"obras-backend/pkg/auth"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

const testSecret = "test-secret"

// stubClient serves canned upstream responses for router tests.
type stubClient struct {
	records map[string]forms.Record
}

func (s *stubClient) Create(_ context.Context, _ string, payload forms.Record) (forms.Record, error) {
	stored := payload.Clone()
	stored["id"] = "42"
	return stored, nil
}

func (s *stubClient) Update(_ context.Context, _, _ string, _ forms.Record) error { return nil }

func (s *stubClient) List(_ context.Context, _ string, _ ports.ListParams) (*ports.ListResult, error) {
	return &ports.ListResult{
		Items:      []forms.Record{{"id": "1", "nome": "Escola Nova"}},
		TotalItems: 1,
		TotalPages: 1,
	}, nil
}

func (s *stubClient) GetDetails(_ context.Context, _, id string) (forms.Record, error) {
	if record, ok := s.records[id]; ok {
		return record.Clone(), nil
	}
	return nil, apperrors.NewNotFoundError("registro")
}

func (s *stubClient) Associate(_ context.Context, _, _, _ string) error   { return nil }
func (s *stubClient) Dissociate(_ context.Context, _, _, _ string) error { return nil }

type silentNotifier struct{}

func (silentNotifier) Success(string) {}
func (silentNotifier) Error(string)   {}
func (silentNotifier) Confirm(string) bool {
	return true
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	client := &stubClient{records: map[string]forms.Record{
		"42": {"id": "42", "nome": "Escola Nova", "verba_disponivel": 1500.0},
	}}
	notifier := silentNotifier{}
	metrics := observability.NewCollector("obras_test")
	logger := zap.NewNop()

	validator, err := auth.NewJWTValidator(auth.JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	router := NewRouter(
		services.NewProjectService(client, notifier, metrics, logger),
		services.NewUserService(client, notifier, metrics, logger),
		services.NewCatalogService(client, notifier, metrics, logger),
		services.NewAssociationService(client, notifier, metrics, logger),
		validator,
		metrics,
		CORSOptions{},
		logger,
	)
	return router.Setup()
}

func signTestToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpointsArePublic(t *testing.T) {
	handler := newTestRouter(t)

	rec := doRequest(t, handler, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/ready", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	handler := newTestRouter(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/obras", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/obras", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProject(t *testing.T) {
	handler := newTestRouter(t)
	token := signTestToken(t)

	payload := forms.Record{
		"nome":             "Reforma da Escola Municipal",
		"verba_disponivel": "R$ 1.500,00",
		"data_inicio":      "10/01/2024",
		"data_previsao":    "20/12/2024",
	}
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/obras", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "42", envelope.Data["id"])
	assert.Equal(t, 1500.0, envelope.Data["verba_disponivel"])
	assert.Equal(t, "2024-01-10", envelope.Data["data_inicio"])
}

func TestCreateProjectRejectsInvalidPayload(t *testing.T) {
	handler := newTestRouter(t)
	token := signTestToken(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/obras", forms.Record{"nome": "ab"}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Type    string                 `json:"type"`
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Error.Type)
	assert.Contains(t, envelope.Error.Details, "nome")
}

func TestListProjectsCarriesPagination(t *testing.T) {
	handler := newTestRouter(t)
	token := signTestToken(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/obras?page=2&page_size=5", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Meta struct {
			Pagination struct {
				Page     int `json:"page"`
				PageSize int `json:"page_size"`
			} `json:"pagination"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 2, envelope.Meta.Pagination.Page)
	assert.Equal(t, 5, envelope.Meta.Pagination.PageSize)
}

func TestCatalogRoutesServeKnownEntities(t *testing.T) {
	handler := newTestRouter(t)
	token := signTestToken(t)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/bairros", forms.Record{"nome": "Centro"}, token)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, handler, http.MethodGet, "/api/v1/inexistente", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAssociationRoutes(t *testing.T) {
	handler := newTestRouter(t)
	token := signTestToken(t)

	body := map[string]string{"child_id": "7", "parent_id": "42"}
	rec := doRequest(t, handler, http.MethodPost, "/api/v1/associacoes/fiscal-obra", body, token)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, handler, http.MethodDelete, "/api/v1/associacoes/fiscal-obra", body, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	// missing IDs fail struct validation before hitting the service
	rec = doRequest(t, handler, http.MethodPost, "/api/v1/associacoes/fiscal-obra", map[string]string{"child_id": "7"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProjectNotFound(t *testing.T) {
	handler := newTestRouter(t)
	token := signTestToken(t)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/obras/999", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
