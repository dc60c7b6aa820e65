package models

import (
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestLinkKindString(t *testing.T) {
	tests := []struct {
		kind LinkKind
		want string
	}{
		{KindPlaylist, "playlist"},
		{KindAlbum, "album"},
		{KindTrack, "track"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestCredentialsComplete(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"zero value", Credentials{}, false},
		{"missing refresh token", Credentials{TokenType: "Bearer", AccessToken: "a"}, false},
		{"missing token type", Credentials{AccessToken: "a", RefreshToken: "r"}, false},
		{"all present", Credentials{TokenType: "Bearer", AccessToken: "a", RefreshToken: "r"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Complete(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCredentialsTokenRoundTrip(t *testing.T) {
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := &oauth2.Token{
		TokenType:    "Bearer",
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       expiry,
	}

	creds := CredentialsFromToken(tok)
	if !creds.Complete() {
		t.Error("expected complete credentials from a full token")
	}

	back := creds.Token()
	if back.AccessToken != tok.AccessToken || back.RefreshToken != tok.RefreshToken {
		t.Errorf("expected round trip, got %+v", back)
	}
	if !back.Expiry.Equal(expiry) {
		t.Errorf("expected expiry %v, got %v", expiry, back.Expiry)
	}
}
