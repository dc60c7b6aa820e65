package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Link classification errors
	ErrUnsupportedLink = fmt.Errorf("unsupported link")

	// Catalog and playback errors
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrPlayerUnavailable = fmt.Errorf("playback backend unavailable")
	ErrResolutionFailed  = fmt.Errorf("catalog lookup failed")
	ErrSubmissionFailed  = fmt.Errorf("track submission failed")
	ErrPlaylistNotFound  = fmt.Errorf("playlist not found")
	ErrAlbumNotFound     = fmt.Errorf("album not found")
	ErrTrackNotFound     = fmt.Errorf("track not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
