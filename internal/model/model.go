// Package model holds the domain types shared by the repository,
// service and handler layers, together with the request payloads the
// handlers bind and validate.
package model
