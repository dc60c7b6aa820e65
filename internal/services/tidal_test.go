package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/shared"
	"golang.org/x/oauth2"
)

// rewriteTransport redirects every request to the test server so the
// hard-coded API hosts resolve to local handlers.
type rewriteTransport struct {
	host string
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.host
	return http.DefaultTransport.RoundTrip(req)
}

func testClient(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("failed to parse test server URL: %v", err)
	}
	return &http.Client{Transport: rewriteTransport{host: u.Host}}
}

func newTestService(t *testing.T, srv *httptest.Server) *TidalService {
	t.Helper()
	svc, err := NewTidalService(map[string]string{"client_id": "test_client_id"})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	svc.httpClient = testClient(t, srv)
	svc.token = &oauth2.Token{TokenType: "Bearer", AccessToken: "token"}
	return svc
}

func TestNewTidalService(t *testing.T) {
	t.Run("with valid credentials", func(t *testing.T) {
		svc, err := NewTidalService(map[string]string{
			"client_id":     "test_client_id",
			"client_secret": "test_client_secret",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if svc.Name() != "Tidal" {
			t.Errorf("expected service name 'Tidal', got %s", svc.Name())
		}
	})

	t.Run("missing client_id", func(t *testing.T) {
		_, err := NewTidalService(map[string]string{"client_secret": "secret"})
		if !errors.Is(err, shared.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		svc, err := NewTidalService(map[string]string{"client_id": "id"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if svc.countryCode != "US" {
			t.Errorf("expected default country code US, got %s", svc.countryCode)
		}
		if svc.config.RedirectURL == "" {
			t.Error("expected a default redirect URL")
		}
	})
}

func TestCheckLogin(t *testing.T) {
	t.Run("valid session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/sessions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("countryCode") == "" {
				t.Error("expected countryCode query parameter")
			}
			json.NewEncoder(w).Encode(map[string]any{"sessionId": "abc", "userId": 1})
		}))
		defer srv.Close()

		if err := newTestService(t, srv).CheckLogin(context.Background()); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty session id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{})
		}))
		defer srv.Close()

		if err := newTestService(t, srv).CheckLogin(context.Background()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("unauthorized maps to token expiry", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		if err := newTestService(t, srv).CheckLogin(context.Background()); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("no token installed", func(t *testing.T) {
		svc, err := NewTidalService(map[string]string{"client_id": "id"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := svc.CheckLogin(context.Background()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})
}

func TestPlaylist(t *testing.T) {
	t.Run("paginated item envelope", func(t *testing.T) {
		// Three tracks delivered over two pages; playlist items wrap each
		// track in an "item" field.
		trackItem := func(id int, title, artist string) map[string]any {
			return map[string]any{
				"item": map[string]any{
					"id":       id,
					"title":    title,
					"duration": 200,
					"artist":   map[string]any{"id": 1, "name": artist},
				},
			}
		}

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/playlists/mix-1":
				json.NewEncoder(w).Encode(map[string]any{
					"uuid":           "mix-1",
					"title":          "Morning Mix",
					"numberOfTracks": 3,
				})
			case "/v1/playlists/mix-1/items":
				offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
				if offset == 0 {
					json.NewEncoder(w).Encode(map[string]any{
						"totalNumberOfItems": 3,
						"items": []any{
							trackItem(1, "One", "A"),
							trackItem(2, "Two", "B"),
						},
					})
				} else {
					json.NewEncoder(w).Encode(map[string]any{
						"totalNumberOfItems": 3,
						"items":              []any{trackItem(3, "Three", "C")},
					})
				}
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		col, err := newTestService(t, srv).Playlist(context.Background(), "mix-1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if col.Name != "Morning Mix" || col.TrackCount != 3 {
			t.Errorf("unexpected collection header: %+v", col)
		}
		if len(col.Tracks) != 3 {
			t.Fatalf("expected 3 tracks, got %d", len(col.Tracks))
		}
		want := []string{"One", "Two", "Three"}
		for i, title := range want {
			if col.Tracks[i].Title != title {
				t.Errorf("expected track %q at %d, got %q", title, i, col.Tracks[i].Title)
			}
		}
		if col.Tracks[0].Artist != "A" {
			t.Errorf("expected artist A, got %q", col.Tracks[0].Artist)
		}
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestService(t, srv).Playlist(context.Background(), "missing")
		if !errors.Is(err, shared.ErrPlaylistNotFound) {
			t.Errorf("expected ErrPlaylistNotFound, got %v", err)
		}
	})
}

func TestAlbum(t *testing.T) {
	t.Run("inline items", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/albums/301998845":
				json.NewEncoder(w).Encode(map[string]any{
					"id":             301998845,
					"title":          "Album Title",
					"numberOfTracks": 2,
				})
			case "/v1/albums/301998845/items":
				// Album items carry the track fields inline.
				json.NewEncoder(w).Encode(map[string]any{
					"totalNumberOfItems": 2,
					"items": []any{
						map[string]any{"id": 10, "title": "First", "artists": []any{map[string]any{"id": 1, "name": "Fallback"}}},
						map[string]any{"id": 11, "title": "Second", "artist": map[string]any{"id": 1, "name": "Named"}},
					},
				})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		col, err := newTestService(t, srv).Album(context.Background(), "301998845")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if col.ID != "301998845" || col.Name != "Album Title" {
			t.Errorf("unexpected collection header: %+v", col)
		}
		if len(col.Tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(col.Tracks))
		}
		if col.Tracks[0].Artist != "Fallback" {
			t.Errorf("expected artists fallback, got %q", col.Tracks[0].Artist)
		}
		if col.Tracks[1].Artist != "Named" {
			t.Errorf("expected primary artist, got %q", col.Tracks[1].Artist)
		}
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestService(t, srv).Album(context.Background(), "0")
		if !errors.Is(err, shared.ErrAlbumNotFound) {
			t.Errorf("expected ErrAlbumNotFound, got %v", err)
		}
	})
}

func TestTrack(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1/tracks/202544965" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"id":       202544965,
				"title":    "Song",
				"duration": 187,
				"artist":   map[string]any{"id": 1, "name": "Artist"},
				"album":    map[string]any{"title": "Album"},
				"url":      "https://tidal.com/track/202544965",
			})
		}))
		defer srv.Close()

		track, err := newTestService(t, srv).Track(context.Background(), "202544965")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if track.ID != "202544965" || track.Title != "Song" || track.Artist != "Artist" {
			t.Errorf("unexpected track: %+v", track)
		}
		if track.Album != "Album" || track.Duration != 187 {
			t.Errorf("unexpected track metadata: %+v", track)
		}
	})

	t.Run("not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestService(t, srv).Track(context.Background(), "0")
		if !errors.Is(err, shared.ErrTrackNotFound) {
			t.Errorf("expected ErrTrackNotFound, got %v", err)
		}
	})
}

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		artist string
		title  string
		want   string
	}{
		{"Artist", "Song", "Artist - Song"},
		{"", "Song", " - Song"},
	}
	for _, tt := range tests {
		got := BuildQuery(models.Track{Artist: tt.artist, Title: tt.title})
		if got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
