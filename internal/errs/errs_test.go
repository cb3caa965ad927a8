package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "TOO_MANY_REQUESTS", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)))
}

func TestConstructorsSetStatusAndCode(t *testing.T) {
	code := CodeFormNameTaken

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized", NewUnauthorizedError("Unauthorized", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"bad request", NewBadRequestError("bad", true, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("taken", true, &code), http.StatusConflict, CodeFormNameTaken},
		{"too many", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"internal with code", NewInternalServerErrorWithCode(CodeFormPersistFailed), http.StatusInternalServerError, CodeFormPersistFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestCodeOfAndStatusOfUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Form not found", true, nil))

	assert.Equal(t, "NOT_FOUND", CodeOf(wrapped))
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))

	plain := errors.New("boom")
	assert.Empty(t, CodeOf(plain))
	assert.Zero(t, StatusOf(plain))
}

func TestBadRequestCarriesFieldErrors(t *testing.T) {
	fieldErrors := []FieldError{{Field: "name", Error: "is required"}}
	err := NewBadRequestError("Validation failed", true, nil, fieldErrors)

	assert.Equal(t, "BAD_REQUEST", err.Code)
	assert.Equal(t, fieldErrors, err.Errors)
	assert.Equal(t, "Validation failed", err.Error())
}

func TestInternalServerErrorHidesDetails(t *testing.T) {
	err := NewInternalServerErrorWithCode(CodeFormPersistFailed)

	assert.Equal(t, CodeFormPersistFailed, err.Code)
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.False(t, err.Override)
}
