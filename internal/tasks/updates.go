package tasks

import (
	"fmt"

	"github.com/tidalq/tidalq/internal/models"
)

// ProgressUpdate represents a progress event during a dispatch.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ClassifyLink Phase = iota
	EnsureSession
	ResolveCollection
	QueueTracks
	DirectForward
	Summary
)

func (p Phase) String() string {
	switch p {
	case ClassifyLink:
		return "classify_link"
	case EnsureSession:
		return "ensure_session"
	case ResolveCollection:
		return "resolve_collection"
	case QueueTracks:
		return "queue_tracks"
	case DirectForward:
		return "direct_forward"
	case Summary:
		return "summary"
	default:
		return ""
	}
}

func classifiedUpdate(link models.LinkRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ClassifyLink,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Recognized %s link (id %s)", link.Kind, link.ID),
		Data:    link,
	}
}

func ensureSessionUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnsureSession,
		Step:    1,
		Total:   1,
		Message: "Checking catalog session...",
	}
}

func resolvingUpdate(link models.LinkRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveCollection,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching %s %s from catalog...", link.Kind, link.ID),
	}
}

func resolvedUpdate(col *models.Collection) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveCollection,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Queuing %s (%d tracks)...", col.Name, len(col.Tracks)),
		Data:    col,
	}
}

func queueTrackUpdate(step, total int, tr models.Track, err error) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] %s - %s", step, total, tr.Artist, tr.Title)
	if err != nil {
		msg = fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, tr.Artist, tr.Title, err)
	}
	return ProgressUpdate{
		Phase:   QueueTracks,
		Step:    step,
		Total:   total,
		Message: msg,
	}
}

func directForwardUpdate(url string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DirectForward,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Forwarding %s directly to the playback backend...", url),
	}
}

func summaryUpdate(result models.BatchResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Summary,
		Step:    result.Attempted,
		Total:   result.Attempted,
		Message: fmt.Sprintf("Queued %d/%d tracks (%d failed)", result.Succeeded, result.Attempted, result.Failed),
		Data:    result,
	}
}
