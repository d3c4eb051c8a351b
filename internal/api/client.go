package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/rauncher/rauncher/internal/auth"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// clientConfig holds configuration for NewClient.
type clientConfig struct {
	endpoint      oauth2.Endpoint
	baseTransport http.RoundTripper
}

// WithEndpoint overrides the storefront OAuth2 endpoints. Used by tests to
// point the client at a local server.
func WithEndpoint(endpoint oauth2.Endpoint) ClientOption {
	return func(c *clientConfig) {
		c.endpoint = endpoint
	}
}

// WithTransport sets a custom base transport for token requests.
// If not provided, http.DefaultTransport is used.
func WithTransport(transport http.RoundTripper) ClientOption {
	return func(c *clientConfig) {
		c.baseTransport = transport
	}
}

// Client talks to the storefront's authentication service. It runs the
// device-code handshake for initial login and exchanges refresh tokens for
// new credentials, satisfying auth.Refresher.
type Client struct {
	conf       *oauth2.Config
	httpClient *http.Client

	// deviceID is a per-client identifier attached to device-auth requests
	// so the storefront can correlate the handshake with this installation.
	deviceID string
}

// Compile-time check to ensure Client implements auth.Refresher
var _ auth.Refresher = (*Client)(nil)

// NewClient creates a storefront authentication client.
func NewClient(opts ...ClientOption) *Client {
	cfg := &clientConfig{
		endpoint:      Endpoint,
		baseTransport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		conf: &oauth2.Config{
			ClientID:     ClientID,
			ClientSecret: clientSecret,
			Scopes:       scopes,
			Endpoint:     cfg.endpoint,
		},
		httpClient: &http.Client{
			Timeout:   30 * time.Second, // bounds every token exchange, including refresh
			Transport: cfg.baseTransport,
		},
		deviceID: uuid.NewString(),
	}
}

// oauthContext injects the client's HTTP client into ctx the way the
// oauth2 package documents (oauth2.HTTPClient context key).
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// StartDeviceAuth begins the device-code handshake. The returned response
// carries the user code and verification URL the user completes in a
// browser, and the device code WaitForDeviceAuth polls with.
func (c *Client) StartDeviceAuth(ctx context.Context) (*oauth2.DeviceAuthResponse, error) {
	resp, err := c.conf.DeviceAuth(c.oauthContext(ctx),
		oauth2.SetAuthURLParam("device_id", c.deviceID))
	if err != nil {
		return nil, fmt.Errorf("starting device authorization: %w", err)
	}
	return resp, nil
}

// WaitForDeviceAuth polls the token endpoint until the user completes the
// handshake, the device code expires, or ctx is canceled. On success the
// resulting credential is returned; it is not persisted here.
func (c *Client) WaitForDeviceAuth(ctx context.Context, da *oauth2.DeviceAuthResponse) (*auth.Token, error) {
	tok, err := c.conf.DeviceAccessToken(c.oauthContext(ctx), da)
	if err != nil {
		return nil, fmt.Errorf("completing device authorization: %w", err)
	}
	return credentialFromOAuth2(tok)
}

// Refresh exchanges refreshToken for a new credential. The call blocks
// until the token endpoint answers or ctx is canceled.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*auth.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("missing refresh token")
	}

	tok, err := c.conf.TokenSource(c.oauthContext(ctx), &oauth2.Token{
		RefreshToken: refreshToken,
	}).Token()
	if err != nil {
		return nil, err
	}
	return credentialFromOAuth2(tok)
}

// credentialFromOAuth2 maps a token-endpoint response onto the launcher
// credential. The storefront reports the account identifier as an extra
// field; a response without it is rejected rather than stored half-empty.
func credentialFromOAuth2(tok *oauth2.Token) (*auth.Token, error) {
	accountID, _ := tok.Extra("account_id").(string)

	token := &auth.Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry.UTC(),
		AccountID:    accountID,
	}
	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("incomplete token response: %w", err)
	}
	return token, nil
}
