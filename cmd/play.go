package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tidalq/tidalq/internal/formatter"
	"github.com/tidalq/tidalq/internal/repositories"
	"github.com/tidalq/tidalq/internal/shared"
	"github.com/tidalq/tidalq/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Play classifies a Tidal link and queues its tracks on the playback backend.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: a Tidal link is required", shared.ErrMissingArgument)
	}

	if err := r.ensureDispatcher(); err != nil {
		return err
	}

	opts, err := r.dispatchOptions(cmd)
	if err != nil {
		return err
	}

	r.logger.Info("dispatching link", "url", rawURL, "direct", opts.DirectStreaming, "quiet", opts.Quiet)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ClassifyLink:
				r.writePlain("🔗 %s\n", update.Message)
			case tasks.EnsureSession:
				r.writePlain("🔐 %s\n", update.Message)
			case tasks.ResolveCollection:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.QueueTracks:
				r.writePlain("   %s\n", update.Message)
			case tasks.DirectForward:
				r.writePlain("⏩ %s\n", update.Message)
			}
		}
	}()

	result, err := r.dispatcher.Dispatch(ctx, rawURL, opts, progressCh)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Queue Complete!")
	if result.Collection != nil {
		r.writePlain("%s: %s (%d tracks)\n", result.Link.Kind, result.Collection.Name, result.Collection.TrackCount)
	}
	r.writePlain("%s\n", formatter.BatchSummary(result.Batch))

	if exportPath := cmd.String("export"); exportPath != "" && result.Collection != nil {
		data, err := formatter.CollectionCSV(result.Collection)
		if err != nil {
			return fmt.Errorf("failed to build CSV export: %w", err)
		}
		if err := os.WriteFile(exportPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}
		r.writePlain("✓ Track list exported to %s\n", exportPath)
	}

	return nil
}

// dispatchOptions builds the per-dispatch options from persisted settings,
// letting command-line flags override what the database holds.
func (r *Runner) dispatchOptions(cmd *cli.Command) (tasks.DispatcherOptions, error) {
	direct, err := r.settings.GetBool(repositories.SettingDirectStreaming, false)
	if err != nil {
		return tasks.DispatcherOptions{}, fmt.Errorf("failed to read settings: %w", err)
	}
	quiet, err := r.settings.GetBool(repositories.SettingQuietMode, false)
	if err != nil {
		return tasks.DispatcherOptions{}, fmt.Errorf("failed to read settings: %w", err)
	}

	if cmd.IsSet("direct") {
		direct = cmd.Bool("direct")
	}
	if cmd.IsSet("quiet") {
		quiet = cmd.Bool("quiet")
	}

	return tasks.DispatcherOptions{
		DirectStreaming: direct,
		Quiet:           quiet,
		ProgressEvery:   r.config.Queue.ProgressEvery,
		SubmitsPerSec:   r.config.Queue.SubmitsPerSecond,
	}, nil
}
