package links

import (
	"errors"
	"testing"

	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/shared"
)

func TestClassify(t *testing.T) {
	t.Run("Supported URLs", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
			kind models.LinkKind
			id   string
		}{
			{
				name: "browse playlist",
				raw:  "https://tidal.com/browse/playlist/7ce3za9f-46c8-4bcb-8a8a-3a1b8b9e0c2d",
				kind: models.KindPlaylist,
				id:   "7ce3za9f-46c8-4bcb-8a8a-3a1b8b9e0c2d",
			},
			{
				name: "listen playlist",
				raw:  "https://listen.tidal.com/playlist/abc-DEF-123",
				kind: models.KindPlaylist,
				id:   "abc-DEF-123",
			},
			{
				name: "browse album",
				raw:  "https://tidal.com/browse/album/301998845",
				kind: models.KindAlbum,
				id:   "301998845",
			},
			{
				name: "browse track",
				raw:  "https://tidal.com/browse/track/202544965",
				kind: models.KindTrack,
				id:   "202544965",
			},
			{
				name: "track with query string",
				raw:  "https://tidal.com/track/202544965?u",
				kind: models.KindTrack,
				id:   "202544965",
			},
			{
				name: "surrounding whitespace",
				raw:  "  https://tidal.com/browse/album/42  ",
				kind: models.KindAlbum,
				id:   "42",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				link, err := Classify(tt.raw)
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if link.Kind != tt.kind {
					t.Errorf("expected kind %v, got %v", tt.kind, link.Kind)
				}
				if link.ID != tt.id {
					t.Errorf("expected id %q, got %q", tt.id, link.ID)
				}
			})
		}
	})

	t.Run("Priority Order", func(t *testing.T) {
		t.Run("playlist wins over album", func(t *testing.T) {
			link, err := Classify("https://tidal.com/playlist/mix-1?from=album/999")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if link.Kind != models.KindPlaylist {
				t.Errorf("expected playlist, got %v", link.Kind)
			}
			if link.ID != "mix-1" {
				t.Errorf("expected id mix-1, got %q", link.ID)
			}
		})

		t.Run("album wins over track", func(t *testing.T) {
			link, err := Classify("https://tidal.com/album/123/track/456")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if link.Kind != models.KindAlbum {
				t.Errorf("expected album, got %v", link.Kind)
			}
			if link.ID != "123" {
				t.Errorf("expected id 123, got %q", link.ID)
			}
		})
	})

	t.Run("Unsupported URLs", func(t *testing.T) {
		tests := []struct {
			name string
			raw  string
		}{
			{"empty input", ""},
			{"whitespace only", "   "},
			{"artist page", "https://tidal.com/browse/artist/3521920"},
			{"no marker", "https://example.com/watch?v=dQw4w9WgXcQ"},
			{"album with non-numeric id", "https://tidal.com/album/not-a-number"},
			{"track with non-numeric id", "https://tidal.com/track/abc"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := Classify(tt.raw)
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, shared.ErrUnsupportedLink) {
					t.Errorf("expected ErrUnsupportedLink, got %v", err)
				}
			})
		}
	})

	t.Run("Source URL preserved", func(t *testing.T) {
		link, err := Classify("https://tidal.com/browse/track/7")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if link.SourceURL != "https://tidal.com/browse/track/7" {
			t.Errorf("expected source URL to be preserved, got %q", link.SourceURL)
		}
	})
}
