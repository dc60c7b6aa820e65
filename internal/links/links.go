// package links classifies catalog URLs into typed link references.
package links

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/shared"
)

// Marker substrings tested in fixed priority order; first match wins.
// Playlist IDs are UUID-shaped (letters, digits, hyphens) while album and
// track IDs are numeric, so each marker carries its own identifier pattern.
var classifiers = []struct {
	kind    models.LinkKind
	marker  string
	pattern *regexp.Regexp
}{
	{models.KindPlaylist, "playlist/", regexp.MustCompile(`playlist/([A-Za-z0-9-]+)`)},
	{models.KindAlbum, "album/", regexp.MustCompile(`album/([0-9]+)`)},
	{models.KindTrack, "track/", regexp.MustCompile(`track/([0-9]+)`)},
}

// Classify inspects a raw URL and returns a typed [models.LinkRef].
//
// Returns [shared.ErrUnsupportedLink] when no marker matches or the identifier
// cannot be extracted from the matched segment. Callers must report the error
// and take no further action.
func Classify(raw string) (models.LinkRef, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return models.LinkRef{}, fmt.Errorf("%w: empty URL", shared.ErrUnsupportedLink)
	}

	for _, c := range classifiers {
		if !strings.Contains(url, c.marker) {
			continue
		}

		match := c.pattern.FindStringSubmatch(url)
		if match == nil {
			return models.LinkRef{}, fmt.Errorf("%w: invalid %s URL", shared.ErrUnsupportedLink, c.kind)
		}

		return models.LinkRef{Kind: c.kind, ID: match[1], SourceURL: url}, nil
	}

	return models.LinkRef{}, fmt.Errorf("%w: use a playlist, album, or track URL", shared.ErrUnsupportedLink)
}
