package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/form-builder/internal/errs"
	"github.com/deppfellow/form-builder/internal/handler"
	"github.com/deppfellow/form-builder/internal/repository"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/deppfellow/form-builder/internal/service"
	"github.com/deppfellow/form-builder/internal/testutil"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	return &server.Server{
		Config: testutil.NewTestConfig(t),
		Logger: testutil.NewTestLogger(),
		DB:     testutil.NewSQLiteDB(t),
	}
}

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	return newRouterFor(t, newTestServer(t))
}

func newRouterFor(t *testing.T, s *server.Server) *echo.Echo {
	t.Helper()

	services, err := service.NewServices(s, repository.NewRepositories(s))
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStatusIsHealthyWithSQLite(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/status", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDocsAndStaticAreServed(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/openapi.json")

	rec = serve(e, http.MethodGet, "/static/openapi.json", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, json.Valid(rec.Body.Bytes()))
}

func TestFormRoutesRequireIdentity(t *testing.T) {
	e := newTestRouter(t)

	for _, target := range []string{"/api/v1/forms", "/api/v1/forms/stats", "/api/v1/forms/1"} {
		rec := serve(e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, rec).Code, target)
	}

	rec := serve(e, http.MethodPost, "/api/v1/forms", `{"name":"Survey"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateFormValidatesBeforeIdentity(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodPost, "/api/v1/forms", `{"name":"   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "BAD_REQUEST", body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "name", body.Errors[0].Field)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	e := newTestRouter(t)

	rec := serve(e, http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestRateLimitDenialIsLoggedWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	s := newTestServer(t)
	s.Logger = &logger
	s.Config.Server.RateLimitRequests = 1
	s.Config.Server.RateLimitWindow = time.Minute
	e := newRouterFor(t, s)

	var codes []int
	for _, id := range []string{"req-1", "req-2"} {
		req := httptest.NewRequest(http.MethodGet, "/status", nil)
		req.Header.Set("X-Request-ID", id)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)

	var denial map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "rate limit exceeded" {
			denial = entry
		}
	}
	require.NotNil(t, denial, "denied request was not logged")
	assert.Equal(t, "req-2", denial["request_id"])
}
