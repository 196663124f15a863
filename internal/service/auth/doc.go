// Package auth provides the authentication hooks used by the HTTP layer: API
// key verification, current user resolution and JWT token handling.
//
// The hooks are interfaces so that the placeholder implementations shipped
// as defaults can be swapped for real ones without touching call sites.
package auth
