// Package sqlerr normalizes Postgres and SQLite driver errors.
//
// Classify turns either driver's error into an *Error with a shared Code,
// and HandleError maps constraint violations raised by the forms table
// onto 400 responses that name the offending field.
package sqlerr
