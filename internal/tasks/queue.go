package tasks

import (
	"context"

	"github.com/tidalq/tidalq/internal/models"
	"golang.org/x/time/rate"
)

// SubmitFunc submits one track to the playback backend. A non-nil error marks
// the track as failed; the batch continues either way.
type SubmitFunc func(ctx context.Context, track models.Track) error

// QueueOptions controls progress emission and submission pacing.
type QueueOptions struct {
	// Quiet suppresses per-track progress; only the final summary is emitted.
	Quiet bool

	// ProgressEvery emits a per-track update every N tracks in verbose mode.
	// Values below one behave as one (every track, never more often).
	ProgressEvery int

	// Limiter paces submissions. Nil means no pacing.
	Limiter *rate.Limiter
}

// QueueCollection submits every track of a collection in authored order.
//
// Each track is attempted exactly once: a submit error increments Failed and
// the loop continues, so one bad track never aborts the batch. There are no
// retries. An empty collection returns zeros without invoking submit.
func QueueCollection(ctx context.Context, col *models.Collection, submit SubmitFunc, opts QueueOptions, progress chan<- ProgressUpdate) models.BatchResult {
	result := models.BatchResult{}

	every := opts.ProgressEvery
	if every < 1 {
		every = 1
	}

	total := len(col.Tracks)
	for i, track := range col.Tracks {
		if opts.Limiter != nil {
			if err := opts.Limiter.Wait(ctx); err != nil {
				// Context cancelled mid-batch: never-submitted tracks are not
				// attempts, so the counts reflect only actual submissions.
				break
			}
		}

		err := submit(ctx, track)

		result.Attempted++
		if err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}

		if !opts.Quiet && (i%every == 0 || err != nil) {
			sendProgress(progress, queueTrackUpdate(i+1, total, track, err))
		}
	}

	sendProgress(progress, summaryUpdate(result))
	return result
}

// QueueSingle submits one track and surfaces its individual outcome directly
// rather than as a ratio.
func QueueSingle(ctx context.Context, track models.Track, submit SubmitFunc, opts QueueOptions, progress chan<- ProgressUpdate) error {
	err := submit(ctx, track)

	result := models.BatchResult{Attempted: 1}
	if err != nil {
		result.Failed = 1
	} else {
		result.Succeeded = 1
	}

	if !opts.Quiet {
		sendProgress(progress, queueTrackUpdate(1, 1, track, err))
	}
	sendProgress(progress, summaryUpdate(result))

	return err
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
