package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/form-builder/internal/errs"
	"github.com/deppfellow/form-builder/internal/middleware"
	"github.com/deppfellow/form-builder/internal/model"
	"github.com/deppfellow/form-builder/internal/repository"
	"github.com/deppfellow/form-builder/internal/server"
	"github.com/deppfellow/form-builder/internal/service"
	"github.com/deppfellow/form-builder/internal/testutil"
)

// userHeader lets tests pick the caller without a Clerk token.
const userHeader = "X-Test-User"

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	s := &server.Server{
		Config: testutil.NewTestConfig(t),
		Logger: testutil.NewTestLogger(),
		DB:     testutil.NewSQLiteDB(t),
	}
	repos := repository.NewRepositories(s)
	h := NewFormHandler(s, service.NewFormService(s, repos.Form, nil))

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user := c.Request().Header.Get(userHeader); user != "" {
				c.Set(middleware.UserIDKey, user)
			}
			return next(c)
		}
	})

	e.GET("/forms/stats", Handle(h.GetFormStats, http.StatusOK))
	e.GET("/forms", Handle(h.GetForms, http.StatusOK))
	e.POST("/forms", Handle(h.CreateForm, http.StatusCreated))
	e.GET("/forms/:id", Handle(h.GetFormByID, http.StatusOK))

	return e
}

func do(e *echo.Echo, method, target, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != "" {
		req.Header.Set(userHeader, user)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCreateAndListForms(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodPost, "/forms", "user_a", `{"name":"  Survey ","description":"Quarterly"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[model.CreateFormResponse](t, rec)
	assert.Positive(t, created.ID)

	rec = do(e, http.MethodPost, "/forms", "user_a", `{"name":"Poll"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodGet, "/forms", "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	forms := decode[[]model.Form](t, rec)
	require.Len(t, forms, 2)
	assert.Equal(t, "Poll", forms[0].Name)
	assert.Equal(t, "Survey", forms[1].Name)
	assert.Equal(t, "Quarterly", forms[1].Description)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"id", "userId", "createdAt", "published", "name", "description", "content", "visits", "submissions", "shareUrl"} {
		assert.Contains(t, raw[0], key)
	}
}

func TestListFormsEmptyIsArray(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodGet, "/forms", "user_a", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateFormDuplicateIsConflict(t *testing.T) {
	e := newTestEcho(t)

	require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/forms", "user_a", `{"name":"Survey"}`).Code)

	rec := do(e, http.MethodPost, "/forms", "user_a", `{"name":"Survey"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, errs.CodeFormNameTaken, decode[errs.HTTPError](t, rec).Code)

	assert.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/forms", "user_b", `{"name":"Survey"}`).Code)
}

func TestCreateFormInvalidInput(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodPost, "/forms", "user_a", `{"name":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, errs.FieldError{Field: "name", Error: "is required"}, body.Errors[0])

	rec = do(e, http.MethodPost, "/forms", "user_a", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/forms", "user_a", "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetFormStats(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodGet, "/forms/stats", "user_a", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"visits":0,"submissions":0,"submissionRate":0,"bounceRate":100}`, rec.Body.String())
}

func TestGetFormByID(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodPost, "/forms", "user_a", `{"name":"Survey"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[model.CreateFormResponse](t, rec)
	target := "/forms/" + strconv.FormatInt(created.ID, 10)

	rec = do(e, http.MethodGet, target, "user_a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Survey", decode[model.Form](t, rec).Name)

	rec = do(e, http.MethodGet, target, "user_b", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errs.CodeFormNotFound, decode[errs.HTTPError](t, rec).Code)

	rec = do(e, http.MethodGet, "/forms/abc", "user_a", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/forms/0", "user_a", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnonymousCallerIsUnauthorized(t *testing.T) {
	e := newTestEcho(t)

	rec := do(e, http.MethodGet, "/forms/stats", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", decode[errs.HTTPError](t, rec).Code)
}
