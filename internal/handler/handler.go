// Package handler is the HTTP layer that sits right after the router.
//
// It binds requests, validates them through the validation package and
// calls the service layer. The generic Handle pipeline adds logging and
// tracing around every endpoint.
package handler
