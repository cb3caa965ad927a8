package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/form-builder/internal/errs"
)

type samplePayload struct {
	Title string `json:"title" validate:"required,max=5"`
	Count int    `json:"count" validate:"min=1"`
}

func (p *samplePayload) Validate() error {
	return validator.New().Struct(p)
}

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "content", Message: "must be a JSON array"}}
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidateSuccess(t *testing.T) {
	payload := &samplePayload{}

	err := BindAndValidate(newContext(`{"title":"abc","count":2}`), payload)

	require.NoError(t, err)
	assert.Equal(t, "abc", payload.Title)
	assert.Equal(t, 2, payload.Count)
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(`{"title":`), &samplePayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{"title":"too long title","count":0}`), &samplePayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.True(t, httpErr.Override)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "title", Error: "must not exceed 5 characters"},
		{Field: "count", Error: "must be at least 1"},
	}, httpErr.Errors)
}

func TestValidateCustomErrors(t *testing.T) {
	err := Validate(&customPayload{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, []errs.FieldError{{Field: "content", Error: "must be a JSON array"}}, httpErr.Errors)
}

func TestExtractValidationErrorUnknownError(t *testing.T) {
	msg, fieldErrors := ExtractValidationError(errors.New("boom"))

	assert.Equal(t, "Validation failed: boom", msg)
	assert.Nil(t, fieldErrors)
}

func TestBindErrorMessageFallback(t *testing.T) {
	assert.Equal(t, "Invalid request payload", bindErrorMessage(errors.New("raw")))
	assert.Equal(t, "bad", bindErrorMessage(echo.NewHTTPError(http.StatusBadRequest, "bad")))
}
