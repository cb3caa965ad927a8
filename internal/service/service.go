// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// data from the handler, enforces ownership and uniqueness rules, and calls
// repository methods to read and persist forms.
package service
