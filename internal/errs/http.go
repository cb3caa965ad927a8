package errs

import "strings"

// FieldError reports one invalid request field, for example
// {"field": "name", "error": "is required"}.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the JSON body of every failed API call.
//
// Code is stable and machine-readable (FORM_NAME_ALREADY_EXISTS);
// Message is for people. Override marks messages that are safe to show
// to the end user as-is, while the frontend substitutes its own copy for
// the rest. Errors is set only for invalid input.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MakeUpperCaseWithUnderscores turns status text into a code:
// "Bad Request" becomes "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
