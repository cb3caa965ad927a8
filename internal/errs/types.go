package errs

import "net/http"

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

func newHTTPError(status int, code *string, message string, override bool) *HTTPError {
	formatted := statusCode(status)
	if code != nil {
		formatted = *code
	}

	return &HTTPError{
		Code:     formatted,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

func NewUnauthorizedError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, nil, message, override)
}

func NewForbiddenError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusForbidden, nil, message, override)
}

// NewBadRequestError builds a 400. code defaults to BAD_REQUEST; fieldErrors
// is set for payloads that failed validation.
func NewBadRequestError(message string, override bool, code *string, fieldErrors []FieldError) *HTTPError {
	err := newHTTPError(http.StatusBadRequest, code, message, override)
	err.Errors = fieldErrors
	return err
}

func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, code, message, override)
}

// NewConflictError builds a 409 for requests that collide with stored
// state, such as a form name the caller already uses.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusConflict, code, message, override)
}

func NewTooManyRequestsError(message string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, nil, message, true)
}

// NewInternalServerError builds a 500 whose message is only the status
// text. The cause belongs in the logs.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, nil, http.StatusText(http.StatusInternalServerError), false)
}

// NewInternalServerErrorWithCode is NewInternalServerError with a
// domain code, such as FORM_PERSISTENCE_FAILED.
func NewInternalServerErrorWithCode(code string) *HTTPError {
	return newHTTPError(http.StatusInternalServerError, &code, http.StatusText(http.StatusInternalServerError), false)
}
