package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
)

// Status reports playback backend health and the stored session state.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking status")
	r.writePlainHeader("tidalq status")

	if r.player == nil {
		r.writePlain("Playback backend: ✗ not configured\n")
	} else if err := r.player.Health(ctx); err != nil {
		r.writePlain("Playback backend: ✗ unreachable at %s\n", r.config.Playback.BaseURL)
	} else {
		r.writePlain("Playback backend: ✓ healthy at %s\n", r.config.Playback.BaseURL)
	}

	if r.creds == nil {
		r.writePlain("Session: ✗ database not initialized, run 'tidalq setup database'\n")
		return nil
	}

	creds, err := r.creds.Load()
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	switch {
	case !creds.Complete():
		r.writePlain("Session: ✗ not authorized, run 'tidalq setup auth'\n")
	case !creds.ExpiresAt.IsZero() && time.Now().After(creds.ExpiresAt):
		r.writePlain("Session: ⚠ token expired at %v\n", creds.ExpiresAt.Format(time.RFC3339))
	default:
		r.writePlain("Session: ✓ authorized\n")
	}

	return nil
}
