// package tasks orchestrates the dispatch flow: classify a link, gate on the
// session, resolve the collection, and batch-queue tracks into the playback
// backend.
//
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/tidalq/tidalq/internal/links"
	"github.com/tidalq/tidalq/internal/models"
	"github.com/tidalq/tidalq/internal/services"
	"github.com/tidalq/tidalq/internal/shared"
	"golang.org/x/time/rate"
)

// Resolved is the output of the classify-and-resolve stage: either a
// collection (playlist, album) or a single track, never both.
type Resolved struct {
	Link       models.LinkRef
	Collection *models.Collection
	Track      *models.Track
}

// DispatchResult contains everything produced by one dispatch call.
type DispatchResult struct {
	Link       models.LinkRef     // Classified input link
	Collection *models.Collection // Resolved collection, nil for single tracks and direct mode
	Track      *models.Track      // Resolved track for the single-track path
	Batch      models.BatchResult // Queuing summary
	Direct     bool               // True when the direct-URI bypass handled the link
}

// DispatcherOptions carries the per-dispatch mode flags and tuning.
type DispatcherOptions struct {
	DirectStreaming bool    // Forward the source URL, skip resolution and batching
	Quiet           bool    // Suppress per-track progress
	ProgressEvery   int     // Verbose-mode progress cadence in tracks
	SubmitsPerSec   float64 // Submission pacing; zero disables
}

// Dispatcher wires the classifier, gatekeeper, resolver, and batch queuer
// into the single dispatch flow.
//
// One dispatch runs at a time from the caller's perspective; blocking catalog
// calls go through the bounded executor so concurrent callers never pile onto
// the catalog.
type Dispatcher struct {
	resolver services.Resolver
	player   services.Player
	gate     *Gatekeeper
	executor *Executor
}

// NewDispatcher creates a Dispatcher with the provided collaborators.
func NewDispatcher(resolver services.Resolver, player services.Player, gate *Gatekeeper, executor *Executor) *Dispatcher {
	if executor == nil {
		executor = NewExecutor(1)
	}

	return &Dispatcher{
		resolver: resolver,
		player:   player,
		gate:     gate,
		executor: executor,
	}
}

// Dispatch processes one link end to end.
//
// Error policy: classification, authentication, and collaborator-availability
// failures abort immediately; a resolution failure aborts the collection;
// per-track submission failures are counted in the batch result and never
// abort it. Nothing is retried.
func (d *Dispatcher) Dispatch(ctx context.Context, rawURL string, opts DispatcherOptions, progress chan<- ProgressUpdate) (*DispatchResult, error) {
	if d.player == nil {
		return nil, fmt.Errorf("%w: no playback backend configured", shared.ErrPlayerUnavailable)
	}

	if err := d.player.Health(ctx); err != nil {
		return nil, err
	}

	// Direct mode delegates identification and playback wholesale; no
	// classification, session, or batching involved.
	if opts.DirectStreaming {
		sendProgress(progress, directForwardUpdate(rawURL))
		if err := d.player.EnqueueURL(ctx, rawURL); err != nil {
			return nil, err
		}
		return &DispatchResult{
			Link:   models.LinkRef{SourceURL: rawURL},
			Batch:  models.BatchResult{Attempted: 1, Succeeded: 1},
			Direct: true,
		}, nil
	}

	resolved, err := d.Resolve(ctx, rawURL, progress)
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{
		Link:       resolved.Link,
		Collection: resolved.Collection,
		Track:      resolved.Track,
	}

	result.Batch, err = d.Queue(ctx, resolved, opts, progress)
	if err != nil {
		return result, err
	}

	return result, nil
}

// Resolve classifies a link, gates on the session, and fetches metadata.
//
// Used directly by the TUI so the user can preview a collection before
// committing to queue it.
func (d *Dispatcher) Resolve(ctx context.Context, rawURL string, progress chan<- ProgressUpdate) (*Resolved, error) {
	link, err := links.Classify(rawURL)
	if err != nil {
		return nil, err
	}
	sendProgress(progress, classifiedUpdate(link))

	sendProgress(progress, ensureSessionUpdate())
	if err := d.gate.Ensure(ctx); err != nil {
		return nil, err
	}

	sendProgress(progress, resolvingUpdate(link))

	resolved := &Resolved{Link: link}
	err = d.executor.Do(ctx, func(ctx context.Context) error {
		var err error
		switch link.Kind {
		case models.KindPlaylist:
			resolved.Collection, err = d.resolver.Playlist(ctx, link.ID)
		case models.KindAlbum:
			resolved.Collection, err = d.resolver.Album(ctx, link.ID)
		case models.KindTrack:
			resolved.Track, err = d.resolver.Track(ctx, link.ID)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrResolutionFailed, err)
	}

	if resolved.Collection != nil {
		sendProgress(progress, resolvedUpdate(resolved.Collection))
	}

	return resolved, nil
}

// Queue submits a resolved link's tracks to the playback backend.
//
// Collections go through the batch queuer; the single-track path surfaces the
// individual outcome directly rather than as a ratio.
func (d *Dispatcher) Queue(ctx context.Context, resolved *Resolved, opts DispatcherOptions, progress chan<- ProgressUpdate) (models.BatchResult, error) {
	queueOpts := QueueOptions{
		Quiet:         opts.Quiet,
		ProgressEvery: opts.ProgressEvery,
	}
	if opts.SubmitsPerSec > 0 {
		queueOpts.Limiter = rate.NewLimiter(rate.Limit(opts.SubmitsPerSec), 1)
	}

	submit := func(ctx context.Context, track models.Track) error {
		return d.player.Enqueue(ctx, services.BuildQuery(track))
	}

	if resolved.Track != nil {
		track := *resolved.Track
		err := QueueSingle(ctx, track, submit, queueOpts, progress)
		if err != nil {
			return models.BatchResult{Attempted: 1, Failed: 1},
				fmt.Errorf("%w: %s: %v", shared.ErrSubmissionFailed, services.BuildQuery(track), err)
		}
		return models.BatchResult{Attempted: 1, Succeeded: 1}, nil
	}

	if resolved.Collection == nil {
		return models.BatchResult{}, fmt.Errorf("%w: nothing resolved to queue", shared.ErrInvalidInput)
	}

	return QueueCollection(ctx, resolved.Collection, submit, queueOpts, progress), nil
}
