package formatter

import (
	"strings"
	"testing"

	"github.com/tidalq/tidalq/internal/models"
)

func sampleCollection() *models.Collection {
	return &models.Collection{
		ID:         "mix-1",
		Name:       "Morning Mix",
		Kind:       models.KindPlaylist,
		TrackCount: 2,
		Tracks: []models.Track{
			{ID: "1", Title: "One", Artist: "A", Album: "First", Duration: 187},
			{ID: "2", Title: "Two, Part 2", Artist: "B", Album: "Second", Duration: 61},
		},
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{59, "0:59"},
		{61, "1:01"},
		{187, "3:07"},
		{3600, "60:00"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestCollectionText(t *testing.T) {
	text := string(CollectionText(sampleCollection()))

	if !strings.Contains(text, "Playlist: Morning Mix") {
		t.Errorf("expected header, got %q", text)
	}
	if !strings.Contains(text, "1. A - One [3:07]") {
		t.Errorf("expected numbered track line, got %q", text)
	}
	if !strings.Contains(text, "Tracks: 2") {
		t.Errorf("expected track count, got %q", text)
	}
}

func TestCollectionCSV(t *testing.T) {
	data, err := CollectionCSV(sampleCollection())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if lines[0] != "ID,Title,Artist,Album,Duration" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "1,One,A,First,187" {
		t.Errorf("unexpected record %q", lines[1])
	}
	// Titles containing commas must be quoted.
	if !strings.Contains(lines[2], `"Two, Part 2"`) {
		t.Errorf("expected quoted title, got %q", lines[2])
	}
}

func TestBatchSummary(t *testing.T) {
	tests := []struct {
		name   string
		result models.BatchResult
		want   string
	}{
		{"empty batch", models.BatchResult{}, "Nothing to queue."},
		{"all succeeded", models.BatchResult{Attempted: 3, Succeeded: 3}, "Queued 3/3 tracks."},
		{"partial failure", models.BatchResult{Attempted: 5, Succeeded: 3, Failed: 2}, "Queued 3/5 tracks (2 failed)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BatchSummary(tt.result); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
