package api

import (
	"golang.org/x/oauth2"
)

const (
	// ClientID identifies the launcher to the storefront's OAuth2 service.
	// This is the public launcher client; the paired secret below is not a
	// user credential.
	ClientID = "34a02cf8f4414e29b15921876da36f9a"

	clientSecret = "daafbccc737745039dffe53d94fc76cf"
)

// Endpoint defines the storefront's OAuth2 endpoints. The token service
// expects client credentials via HTTP basic auth.
var Endpoint = oauth2.Endpoint{
	TokenURL:      "https://account-public-service-prod.ol.epicgames.com/account/api/oauth/token",
	DeviceAuthURL: "https://account-public-service-prod.ol.epicgames.com/account/api/oauth/deviceAuthorization",
	AuthStyle:     oauth2.AuthStyleInHeader,
}

// scopes requested during the device-code handshake
var scopes = []string{"basic_profile", "friends_list", "presence"}
