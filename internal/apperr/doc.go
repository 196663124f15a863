// Package apperr defines the application error taxonomy. Every error that is
// meant to be shown to API clients is an *Error tagged with a Kind; anything
// else is treated as an internal failure at the HTTP boundary.
package apperr
