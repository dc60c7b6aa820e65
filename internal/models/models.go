// package models defines the data model for the link dispatcher
package models

import (
	"time"

	"golang.org/x/oauth2"
)

// LinkKind identifies what a catalog link points at.
type LinkKind int

const (
	KindPlaylist LinkKind = iota
	KindAlbum
	KindTrack
)

func (k LinkKind) String() string {
	switch k {
	case KindPlaylist:
		return "playlist"
	case KindAlbum:
		return "album"
	case KindTrack:
		return "track"
	default:
		return "unknown"
	}
}

// LinkRef is a classified catalog link: exactly one kind, with the identifier
// extracted from the URL. SourceURL keeps the original input so direct-URI
// streaming can forward it unchanged.
type LinkRef struct {
	Kind      LinkKind
	ID        string
	SourceURL string
}

// Track represents a single catalog track, normalized by the resolver.
type Track struct {
	ID        string
	Title     string
	Artist    string
	Album     string
	Duration  int    // Duration in seconds
	StreamURL string // Optional direct stream URI
}

// Collection is an ordered group of tracks sharing one summary (a playlist or
// an album). Transient: scoped to a single dispatch.
type Collection struct {
	ID         string
	Name       string
	Kind       LinkKind
	TrackCount int
	Tracks     []Track
}

// Credentials holds the long-lived OAuth material persisted across restarts.
// All fields are empty until the first successful authorization.
type Credentials struct {
	TokenType    string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Complete reports whether every field required to initialize a session is present.
func (c Credentials) Complete() bool {
	return c.TokenType != "" && c.AccessToken != "" && c.RefreshToken != ""
}

// Token converts the credentials to an [oauth2.Token].
func (c Credentials) Token() *oauth2.Token {
	return &oauth2.Token{
		TokenType:    c.TokenType,
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		Expiry:       c.ExpiresAt,
	}
}

// CredentialsFromToken builds Credentials from an [oauth2.Token].
func CredentialsFromToken(tok *oauth2.Token) Credentials {
	return Credentials{
		TokenType:    tok.TokenType,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
}

// BatchResult summarizes one batch queuing pass. Attempted counts every track
// actually submitted; Succeeded + Failed == Attempted. On a full pass that is
// every track in the collection; a cancelled pass leaves the never-submitted
// remainder uncounted.
type BatchResult struct {
	Attempted int
	Succeeded int
	Failed    int
}
