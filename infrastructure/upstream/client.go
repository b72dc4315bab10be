// Package upstream implements the HTTP client for the municipal REST API.
// Every call goes through a circuit breaker so a failing upstream degrades
// into fast UNAVAILABLE errors instead of piling up timeouts.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/domain/forms"
	apperrors "obras-backend/pkg/errors"
	"obras-backend/pkg/observability"
)

// Config holds the upstream connection settings.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	APIToken       string

	// Circuit breaker tuning
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultConfig returns upstream settings suitable for production.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:          baseURL,
		RequestTimeout:   10 * time.Second,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Client talks to the municipal API. It implements ports.UpstreamClient.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *observability.Collector
	logger  *zap.Logger
}

// NewClient creates a new upstream client.
func NewClient(cfg Config, metrics *observability.Collector, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "municipal-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// Client-side errors (validation, conflict, not found) do not
			// indicate upstream ill health and must not trip the breaker.
			if err == nil {
				return true
			}
			if appErr := apperrors.GetAppError(err); appErr != nil {
				return appErr.HTTPStatus < http.StatusInternalServerError
			}
			return false
		},
	})

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.APIToken,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		breaker: breaker,
		metrics: metrics,
		logger:  logger,
	}
}

// Create posts a new entity and returns the stored record. Each create
// carries an idempotency key so a retried request cannot duplicate records.
func (c *Client) Create(ctx context.Context, entity string, payload forms.Record) (forms.Record, error) {
	var out forms.Record
	err := c.doWithHeaders(ctx, http.MethodPost, "/"+entity, payload, &out, map[string]string{
		"X-Idempotency-Key": uuid.New().String(),
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update patches one entity with a partial payload.
func (c *Client) Update(ctx context.Context, entity, id string, partial forms.Record) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/%s/%s", entity, url.PathEscape(id)), partial, nil)
}

// List fetches one page of entities.
func (c *Client) List(ctx context.Context, entity string, params ports.ListParams) (*ports.ListResult, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("page_size", strconv.Itoa(params.PageSize))
	if params.Search != "" {
		query.Set("search", params.Search)
	}

	var out ports.ListResult
	err := c.do(ctx, http.MethodGet, "/"+entity+"?"+query.Encode(), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetDetails fetches one entity with nested arrays.
func (c *Client) GetDetails(ctx context.Context, entity, id string) (forms.Record, error) {
	var out forms.Record
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%s", entity, url.PathEscape(id)), nil, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Associate links a child entity to a parent.
func (c *Client) Associate(ctx context.Context, kind, childID, parentID string) error {
	payload := forms.Record{"child_id": childID, "parent_id": parentID}
	return c.do(ctx, http.MethodPost, "/associacoes/"+kind, payload, nil)
}

// Dissociate removes a child-parent link.
func (c *Client) Dissociate(ctx context.Context, kind, childID, parentID string) error {
	query := url.Values{}
	query.Set("child_id", childID)
	query.Set("parent_id", parentID)
	return c.do(ctx, http.MethodDelete, "/associacoes/"+kind+"?"+query.Encode(), nil, nil)
}

// do runs one request through the circuit breaker and decodes the response.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.doWithHeaders(ctx, method, path, body, out, nil)
}

func (c *Client) doWithHeaders(ctx context.Context, method, path string, body, out interface{}, headers map[string]string) error {
	operation := method + " " + path

	_, err := c.breaker.Execute(func() (interface{}, error) {
		var reader *bytes.Reader
		if body != nil {
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, apperrors.NewInternalError("failed to encode request body").WithCause(err)
			}
			reader = bytes.NewReader(encoded)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build request").WithCause(err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		for key, value := range headers {
			req.Header.Set(key, value)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() == context.DeadlineExceeded {
				return nil, apperrors.NewTimeoutError(operation)
			}
			return nil, apperrors.NewUpstreamError(operation, 0, err)
		}
		defer resp.Body.Close()

		if err := c.checkStatus(operation, resp); err != nil {
			return nil, err
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, apperrors.NewUpstreamError(operation, resp.StatusCode, err)
			}
		}
		return nil, nil
	})

	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		c.logger.Warn("Upstream call rejected by circuit breaker", zap.String("operation", operation))
		err = apperrors.NewUnavailableError("municipal-api").WithCause(err)
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	c.metrics.UpstreamCalls.WithLabelValues(metricOperation(method, path), result).Inc()
	return err
}

// metricOperation keeps the operation label low-cardinality: method plus the
// first path segment, never ids or query strings.
func metricOperation(method, path string) string {
	segment := strings.TrimPrefix(path, "/")
	if idx := strings.IndexAny(segment, "/?"); idx != -1 {
		segment = segment[:idx]
	}
	return method + " /" + segment
}

func (c *Client) checkStatus(operation string, resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return apperrors.NewConflictError("registro já existe").WithDetail("operation", operation)
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError("registro")
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.NewUnauthorizedError("")
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.NewValidationError("requisição rejeitada pela API municipal")
	default:
		return apperrors.NewUpstreamError(operation, resp.StatusCode, nil)
	}
}
