// package services defines interfaces for the external collaborators:
// the Tidal catalog and the audio playback backend.
package services

import (
	"context"

	"github.com/tidalq/tidalq/internal/models"
	"golang.org/x/oauth2"
)

// Resolver defines the catalog operations needed to turn a link identifier
// into normalized track metadata.
type Resolver interface {
	// CheckLogin validates the installed session against the catalog's authority.
	CheckLogin(ctx context.Context) error

	// Playlist retrieves a playlist and its full ordered track listing.
	Playlist(ctx context.Context, id string) (*models.Collection, error)

	// Album retrieves an album and its full ordered track listing.
	Album(ctx context.Context, id string) (*models.Collection, error)

	// Track retrieves a single track.
	Track(ctx context.Context, id string) (*models.Track, error)

	// Name returns the name of the catalog service.
	Name() string
}

// SessionHolder is implemented by resolvers that carry OAuth credentials.
type SessionHolder interface {
	// SetToken installs the OAuth token used for authenticated requests.
	SetToken(ctx context.Context, tok *oauth2.Token)

	// OAuthConfig returns the OAuth2 configuration for the authorization-code flow.
	OAuthConfig() *oauth2.Config
}

// Player defines the playback backend operations: a health probe plus the two
// queuing entry points (free-text search query and direct URL).
type Player interface {
	// Health reports whether the playback backend is reachable and ready.
	Health(ctx context.Context) error

	// Enqueue submits a free-text search query for queuing.
	Enqueue(ctx context.Context, query string) error

	// EnqueueURL submits a direct URL for queuing, delegating identification
	// to the backend.
	EnqueueURL(ctx context.Context, url string) error
}

// BuildQuery renders the playback search query for a track.
//
// Deterministic: "<artist> - <title>".
func BuildQuery(track models.Track) string {
	return track.Artist + " - " + track.Title
}
