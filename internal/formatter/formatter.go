// package formatter renders collections and batch summaries as text and CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/tidalq/tidalq/internal/models"
)

// FormatDuration renders a duration in seconds as m:ss.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// CollectionText renders a collection listing as plain text.
func CollectionText(col *models.Collection) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s: %s\n", titleKind(col.Kind), col.Name))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(col.Tracks)))

	for i, track := range col.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s", i+1, track.Artist, track.Title))
		if track.Duration > 0 {
			buf.WriteString(fmt.Sprintf(" [%s]", FormatDuration(track.Duration)))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// CollectionCSV renders a collection as CSV with columns: ID, Title, Artist, Album, Duration
func CollectionCSV(col *models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range col.Tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			strconv.Itoa(track.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// BatchSummary renders the one-line queuing summary shown to the user.
func BatchSummary(result models.BatchResult) string {
	if result.Attempted == 0 {
		return "Nothing to queue."
	}
	if result.Failed == 0 {
		return fmt.Sprintf("Queued %d/%d tracks.", result.Succeeded, result.Attempted)
	}
	return fmt.Sprintf("Queued %d/%d tracks (%d failed).", result.Succeeded, result.Attempted, result.Failed)
}

func titleKind(kind models.LinkKind) string {
	switch kind {
	case models.KindAlbum:
		return "Album"
	case models.KindTrack:
		return "Track"
	default:
		return "Playlist"
	}
}
