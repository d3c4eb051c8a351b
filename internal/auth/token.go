package auth

import (
	"fmt"
	"time"
)

// Token is the credential pair for an authenticated storefront account.
// A Token is immutable once constructed; a refresh produces a brand-new
// Token that replaces the old one wholesale.
type Token struct {
	// AccessToken is the opaque bearer string presented on API calls.
	AccessToken string `json:"access_token"`

	// RefreshToken is used solely to obtain a new access token.
	RefreshToken string `json:"refresh_token"`

	// ExpiresAt is the absolute UTC instant at which AccessToken becomes
	// unusable. Stored absolute rather than as a duration so a reload
	// never recomputes expiry against a drifted clock.
	ExpiresAt time.Time `json:"expires_at"`

	// AccountID is the stable identifier of the authenticated account.
	AccountID string `json:"account_id"`
}

// IsExpired reports whether the access token is past its expiry.
func (t *Token) IsExpired() bool {
	return !time.Now().Before(t.ExpiresAt)
}

// ExpiresWithin reports whether the token expires in less than d from now.
// A token already past expiry always expires within any window.
func (t *Token) ExpiresWithin(d time.Duration) bool {
	return time.Until(t.ExpiresAt) < d
}

// Validate checks that every field is populated. A credential is either
// fully populated or does not exist; there is no partial state.
func (t *Token) Validate() error {
	switch {
	case t == nil:
		return fmt.Errorf("token is nil")
	case t.AccessToken == "":
		return fmt.Errorf("token missing access token")
	case t.RefreshToken == "":
		return fmt.Errorf("token missing refresh token")
	case t.ExpiresAt.IsZero():
		return fmt.Errorf("token missing expiry")
	case t.AccountID == "":
		return fmt.Errorf("token missing account id")
	}
	return nil
}
