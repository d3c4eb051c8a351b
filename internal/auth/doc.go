// Package auth implements the credential lifecycle for the launcher: the
// access/refresh token pair, its persistence boundary, and the coordination
// logic that transparently refreshes the credential before it expires.
//
// The package holds at most one credential per process. Callers obtain it
// through the Manager, which refreshes ahead of expiry via a pluggable
// Refresher so the lifecycle logic stays independent of any concrete
// storefront client.
package auth
