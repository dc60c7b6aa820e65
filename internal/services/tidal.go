// Tidal API implementation of [Resolver]
//
// Wire types follow the api.tidal.com/v1 response shapes.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/shared"
	"golang.org/x/oauth2"
)

const (
	tidalAuthURL  = "https://login.tidal.com/authorize"
	tidalTokenURL = "https://auth.tidal.com/v1/oauth2/token"
	tidalBaseURL  = "https://api.tidal.com/v1"

	// Page size for collection item listings.
	tidalPageLimit = 100
)

// tidalArtist represents an artist reference in Tidal responses.
type tidalArtist struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// tidalTrack represents a track resource.
type tidalTrack struct {
	ID       int           `json:"id"`
	Title    string        `json:"title"`
	Duration int           `json:"duration"`
	Artist   *tidalArtist  `json:"artist"`
	Artists  []tidalArtist `json:"artists"`
	Album    *struct {
		Title string `json:"title"`
	} `json:"album"`
	URL string `json:"url"`
}

// tidalPlaylist represents a playlist resource.
type tidalPlaylist struct {
	UUID           string `json:"uuid"`
	Title          string `json:"title"`
	NumberOfTracks int    `json:"numberOfTracks"`
}

// tidalAlbum represents an album resource.
type tidalAlbum struct {
	ID             int          `json:"id"`
	Title          string       `json:"title"`
	NumberOfTracks int          `json:"numberOfTracks"`
	Artist         *tidalArtist `json:"artist"`
}

// tidalItems is the paginated envelope for collection item listings.
//
// Playlist items wrap each track in an "item" field; album items return the
// track fields inline. Both shapes are decoded here so nothing downstream has
// to care.
type tidalItems struct {
	Limit              int `json:"limit"`
	Offset             int `json:"offset"`
	TotalNumberOfItems int `json:"totalNumberOfItems"`
	Items              []struct {
		Item *tidalTrack `json:"item"`
		tidalTrack
	} `json:"items"`
}

// tidalSession is the response of the session validation endpoint.
type tidalSession struct {
	SessionID   string `json:"sessionId"`
	UserID      int    `json:"userId"`
	CountryCode string `json:"countryCode"`
}

// TidalService implements [Resolver] for the Tidal catalog.
// Uses [oauth2] for authentication; the token source refreshes expired access
// tokens transparently.
type TidalService struct {
	config      *oauth2.Config
	token       *oauth2.Token
	httpClient  *http.Client
	countryCode string
}

// NewTidalService creates a new Tidal resolver with the given application credentials.
func NewTidalService(credentials map[string]string) (*TidalService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrInvalidCredentials)
	}

	clientSecret := credentials["client_secret"]

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	countryCode, ok := credentials["country_code"]
	if !ok || countryCode == "" {
		countryCode = "US"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{"r_usr", "w_usr"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  tidalAuthURL,
			TokenURL: tidalTokenURL,
		},
	}

	return &TidalService{
		config:      config,
		httpClient:  http.DefaultClient,
		countryCode: countryCode,
	}, nil
}

func (s *TidalService) Name() string {
	return "Tidal"
}

// SetToken installs the OAuth token used for authenticated requests.
//
// The derived client refreshes the access token from the refresh token as
// needed.
func (s *TidalService) SetToken(ctx context.Context, tok *oauth2.Token) {
	s.token = tok
	s.httpClient = s.config.Client(ctx, tok)
}

// OAuthConfig returns the OAuth2 configuration for the authorization-code flow.
func (s *TidalService) OAuthConfig() *oauth2.Config {
	return s.config
}

// AuthURL returns the authorization URL for the callback flow.
func (s *TidalService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// doRequest performs an authenticated GET against the Tidal API.
func (s *TidalService) doRequest(ctx context.Context, endpoint string, query url.Values, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: no session token installed", shared.ErrNotAuthenticated)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("countryCode", s.countryCode)

	apiURL := tidalBaseURL + endpoint + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status 401", shared.ErrTokenExpired)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrResolutionFailed, endpoint)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: tidal API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// CheckLogin validates the installed session by fetching it from the catalog's authority.
func (s *TidalService) CheckLogin(ctx context.Context) error {
	var session tidalSession
	if err := s.doRequest(ctx, "/sessions", nil, &session); err != nil {
		return err
	}

	if session.SessionID == "" {
		return fmt.Errorf("%w: catalog returned no session", shared.ErrNotAuthenticated)
	}

	return nil
}

// Playlist retrieves a playlist and all of its tracks in authored order.
func (s *TidalService) Playlist(ctx context.Context, id string) (*models.Collection, error) {
	var pl tidalPlaylist
	if err := s.doRequest(ctx, fmt.Sprintf("/playlists/%s", id), nil, &pl); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrPlaylistNotFound, err)
	}

	tracks, err := s.collectionItems(ctx, fmt.Sprintf("/playlists/%s/items", id))
	if err != nil {
		return nil, err
	}

	return &models.Collection{
		ID:         pl.UUID,
		Name:       pl.Title,
		Kind:       models.KindPlaylist,
		TrackCount: pl.NumberOfTracks,
		Tracks:     tracks,
	}, nil
}

// Album retrieves an album and all of its tracks in release order.
func (s *TidalService) Album(ctx context.Context, id string) (*models.Collection, error) {
	var al tidalAlbum
	if err := s.doRequest(ctx, fmt.Sprintf("/albums/%s", id), nil, &al); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAlbumNotFound, err)
	}

	tracks, err := s.collectionItems(ctx, fmt.Sprintf("/albums/%s/items", id))
	if err != nil {
		return nil, err
	}

	return &models.Collection{
		ID:         strconv.Itoa(al.ID),
		Name:       al.Title,
		Kind:       models.KindAlbum,
		TrackCount: al.NumberOfTracks,
		Tracks:     tracks,
	}, nil
}

// Track retrieves a single track.
func (s *TidalService) Track(ctx context.Context, id string) (*models.Track, error) {
	var tr tidalTrack
	if err := s.doRequest(ctx, fmt.Sprintf("/tracks/%s", id), nil, &tr); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTrackNotFound, err)
	}

	track := normalizeTrack(tr)
	return &track, nil
}

// collectionItems pages through a collection item listing, preserving order.
func (s *TidalService) collectionItems(ctx context.Context, endpoint string) ([]models.Track, error) {
	var tracks []models.Track
	offset := 0

	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(tidalPageLimit))
		query.Set("offset", strconv.Itoa(offset))

		var page tidalItems
		if err := s.doRequest(ctx, endpoint, query, &page); err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			raw := item.tidalTrack
			if item.Item != nil {
				raw = *item.Item
			}
			tracks = append(tracks, normalizeTrack(raw))
		}

		offset += len(page.Items)
		if offset >= page.TotalNumberOfItems || len(page.Items) == 0 {
			break
		}
	}

	return tracks, nil
}

// normalizeTrack maps a raw Tidal track onto [models.Track], resolving the
// artist-vs-artists split so downstream code never sees it.
func normalizeTrack(tr tidalTrack) models.Track {
	track := models.Track{
		ID:        strconv.Itoa(tr.ID),
		Title:     tr.Title,
		Duration:  tr.Duration,
		StreamURL: tr.URL,
	}

	if tr.Artist != nil {
		track.Artist = tr.Artist.Name
	} else if len(tr.Artists) > 0 {
		track.Artist = tr.Artists[0].Name
	}

	if tr.Album != nil {
		track.Album = tr.Album.Title
	}

	return track
}
