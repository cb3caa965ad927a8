// Package errs defines the error shapes returned to API clients.
//
// Handlers and services return *HTTPError values; the global error handler
// renders them as JSON with a stable machine-readable code, optional field
// errors, and an optional client action.
package errs
