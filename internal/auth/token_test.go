package auth

import (
	"testing"
	"time"
)

func testToken(expiresAt time.Time) *Token {
	return &Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    expiresAt,
		AccountID:    "acct",
	}
}

func TestTokenIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		expired   bool
	}{
		{"well in the future", time.Now().Add(time.Hour), false},
		{"already past", time.Now().Add(-time.Hour), true},
		{"just past", time.Now().Add(-time.Millisecond), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testToken(tt.expiresAt).IsExpired(); got != tt.expired {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expired)
			}
		})
	}
}

func TestTokenExpiresWithin(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		window    time.Duration
		want      bool
	}{
		{"outside window", time.Now().Add(30 * time.Minute), 5 * time.Minute, false},
		{"inside window", time.Now().Add(time.Minute), 5 * time.Minute, true},
		{"already expired counts as within any window", time.Now().Add(-time.Hour), 5 * time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testToken(tt.expiresAt).ExpiresWithin(tt.window); got != tt.want {
				t.Errorf("ExpiresWithin(%v) = %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestTokenValidate(t *testing.T) {
	valid := testToken(time.Now().Add(time.Hour))
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on complete token: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Token)
	}{
		{"missing access token", func(tok *Token) { tok.AccessToken = "" }},
		{"missing refresh token", func(tok *Token) { tok.RefreshToken = "" }},
		{"missing expiry", func(tok *Token) { tok.ExpiresAt = time.Time{} }},
		{"missing account id", func(tok *Token) { tok.AccountID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := *testToken(time.Now().Add(time.Hour))
			tt.mutate(&tok)
			if err := tok.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}

	var nilToken *Token
	if err := nilToken.Validate(); err == nil {
		t.Error("Validate() on nil token = nil, want error")
	}
}
