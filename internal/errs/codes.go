package errs

import "errors"

// Domain error codes returned in HTTPError.Code.
const (
	CodeFormNameTaken     = "FORM_NAME_ALREADY_EXISTS"
	CodeFormNotFound      = "FORM_NOT_FOUND"
	CodeFormPersistFailed = "FORM_PERSISTENCE_FAILED"
)

// CodeOf returns the HTTPError code carried anywhere in err's chain,
// or "" when err is not an HTTPError.
func CodeOf(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not
// an HTTPError.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return 0
}
