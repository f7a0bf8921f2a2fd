package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/gitscm/internal/plugin"
	"github.com/goliatone/gitscm/internal/store"
)

// MockService implements Service for handler tests.
type MockService struct {
	mock.Mock
}

func (m *MockService) ValidateRepository(ctx context.Context, params plugin.Parameters) (string, error) {
	args := m.Called(ctx, params)
	return args.String(0), args.Error(1)
}

func (m *MockService) CheckStatus(ctx context.Context, params plugin.Parameters) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

func (m *MockService) CheckSubscriptionStatus(ctx context.Context, params plugin.Parameters) (*plugin.SubscriptionStatus, error) {
	args := m.Called(ctx, params)
	status, _ := args.Get(0).(*plugin.SubscriptionStatus)
	return status, args.Error(1)
}

func (m *MockService) Link(ctx context.Context, subscription int) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockService) FindAllByName(ctx context.Context, node, criteria string) ([]plugin.NamedBean, error) {
	args := m.Called(ctx, node, criteria)
	beans, _ := args.Get(0).([]plugin.NamedBean)
	return beans, args.Error(1)
}

func newTestRouter(svc Service) http.Handler {
	return NewHandler(svc, nil).Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var repositoryParams = plugin.Parameters{
	plugin.ParameterURL:        "https://git.sample.com/",
	plugin.ParameterRepository: "gfi-gstack",
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestHandleValidate(t *testing.T) {
	svc := new(MockService)
	svc.On("ValidateRepository", mock.Anything, repositoryParams).
		Return("ref: refs/heads/master HEAD", nil)

	rec := doRequest(t, newTestRouter(svc), http.MethodPost, BasePath+"/validate", mustJSON(t, repositoryParams))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ListingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ref: refs/heads/master HEAD", resp.Listing)
	svc.AssertExpectations(t)
}

func TestHandleValidate_ValidationError(t *testing.T) {
	svc := new(MockService)
	svc.On("ValidateRepository", mock.Anything, repositoryParams).Return("", &plugin.ValidationError{
		Field: plugin.ParameterRepository,
		Code:  plugin.CodeRepository,
		Value: "gfi-gstack",
		Err:   errors.New("repository not found"),
	})

	rec := doRequest(t, newTestRouter(svc), http.MethodPost, BasePath+"/validate", mustJSON(t, repositoryParams))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ValidationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, ValidationResponse{Field: "service:scm:git:repository", Code: "git-repository", Value: "gfi-gstack"}, resp)
	assert.NotContains(t, rec.Body.String(), "repository not found")
}

func TestHandleValidate_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "url=x"},
		{name: "array", body: `["a"]`},
		{name: "non string values", body: `{"service:scm:git:index": true}`},
		{name: "empty", body: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			rec := doRequest(t, newTestRouter(svc), http.MethodPost, BasePath+"/validate", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			svc.AssertNotCalled(t, "ValidateRepository", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleStatus(t *testing.T) {
	params := plugin.Parameters{plugin.ParameterURL: "https://git.sample.com/", plugin.ParameterIndex: "true"}

	svc := new(MockService)
	svc.On("CheckStatus", mock.Anything, params).Return(true, nil).Once()

	rec := doRequest(t, newTestRouter(svc), http.MethodPost, BasePath+"/status", mustJSON(t, params))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"up":true}`, rec.Body.String())

	svc.On("CheckStatus", mock.Anything, params).Return(false, &plugin.ValidationError{
		Field: plugin.ParameterURL,
		Code:  plugin.CodeAdmin,
		Value: "https://git.sample.com/",
	}).Once()

	rec = doRequest(t, newTestRouter(svc), http.MethodPost, BasePath+"/status", mustJSON(t, params))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"field":"service:scm:git:url","code":"git-admin","value":"https://git.sample.com/"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandleSubscriptionStatus(t *testing.T) {
	svc := new(MockService)
	svc.On("CheckSubscriptionStatus", mock.Anything, repositoryParams).Return(&plugin.SubscriptionStatus{
		Up:   true,
		Data: map[string]any{"tags": 2, "latestTag": "v1.2.0"},
	}, nil)

	rec := doRequest(t, newTestRouter(svc), http.MethodPost, BasePath+"/subscription-status", mustJSON(t, repositoryParams))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"up":true,"data":{"tags":2,"latestTag":"v1.2.0"}}`, rec.Body.String())
}

func TestHandleLink(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(*MockService)
		wantStatus int
	}{
		{
			name:       "linked",
			path:       "/link/1",
			setup:      func(m *MockService) { m.On("Link", mock.Anything, 1).Return(nil) },
			wantStatus: http.StatusNoContent,
		},
		{
			name: "unknown subscription",
			path: "/link/42",
			setup: func(m *MockService) {
				m.On("Link", mock.Anything, 42).Return(fmt.Errorf("plugin: load subscription 42: %w", store.ErrNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "repository invalid",
			path: "/link/2",
			setup: func(m *MockService) {
				m.On("Link", mock.Anything, 2).Return(&plugin.ValidationError{Field: plugin.ParameterRepository, Code: plugin.CodeRepository})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not a number",
			path:       "/link/abc",
			setup:      func(*MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not positive",
			path:       "/link/0",
			setup:      func(*MockService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setup(svc)

			rec := doRequest(t, newTestRouter(svc), http.MethodPost, BasePath+tt.path, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleFindAllByName(t *testing.T) {
	svc := new(MockService)
	svc.On("FindAllByName", mock.Anything, "service:scm:git:dig", "as-").Return([]plugin.NamedBean{
		{ID: "has-evamed", Name: "has-evamed"},
		{ID: "has-mysql", Name: "has-mysql"},
	}, nil)

	rec := doRequest(t, newTestRouter(svc), http.MethodGet, BasePath+"/service:scm:git:dig/as-", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":"has-evamed","name":"has-evamed"},{"id":"has-mysql","name":"has-mysql"}]`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestHandleFindAllByName_InternalError(t *testing.T) {
	svc := new(MockService)
	svc.On("FindAllByName", mock.Anything, "node", "x").Return(nil, errors.New("secret detail"))

	rec := doRequest(t, newTestRouter(svc), http.MethodGet, BasePath+"/node/x", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "secret detail"))
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(new(MockService)), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

type recordedRequest struct {
	method, route string
	code          int
}

type requestRecorder struct {
	requests []recordedRequest
}

func (r *requestRecorder) RecordHTTPRequest(method, route string, code int) {
	r.requests = append(r.requests, recordedRequest{method: method, route: route, code: code})
}

func TestRoutes_Metrics(t *testing.T) {
	svc := new(MockService)
	svc.On("Link", mock.Anything, 7).Return(nil)

	recorder := &requestRecorder{}
	exposition := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	h := NewHandler(svc, nil, WithMetrics(recorder, exposition), WithTimeout(time.Minute)).Routes()

	rec := doRequest(t, h, http.MethodPost, BasePath+"/link/7", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, "# metrics", rec.Body.String())

	require.Len(t, recorder.requests, 2)
	assert.Equal(t, recordedRequest{method: http.MethodPost, route: BasePath + "/link/{subscription}", code: http.StatusNoContent}, recorder.requests[0])
	assert.Equal(t, "/metrics", recorder.requests[1].route)
}

func TestServer_StartStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := NewServer("127.0.0.1:0", newTestRouter(new(MockService)), nil)

	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	cancel()
	assert.NoError(t, <-done)
}
