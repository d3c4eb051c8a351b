// Package api implements the storefront authentication client: the
// device-code handshake that produces the initial credential and the
// refresh-token exchange that renews it.
//
// The storefront's OAuth2 token endpoint authenticates the launcher client
// with HTTP basic credentials and reports the account identifier as an
// extra field of the token response, which this package folds into the
// auth.Token it returns.
//
// Only the authentication surface lives here. The client satisfies
// auth.Refresher, so the credential lifecycle logic never depends on this
// package directly.
package api
