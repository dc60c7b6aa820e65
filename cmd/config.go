package main

import (
	"context"
	"fmt"

	"github.com/tidalq/tidalq/internal/repositories"
	"github.com/tidalq/tidalq/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigDirect gets or sets the persisted direct streaming mode.
func (r *Runner) ConfigDirect(ctx context.Context, cmd *cli.Command) error {
	return r.configToggle(cmd, repositories.SettingDirectStreaming, "Direct streaming")
}

// ConfigQuiet gets or sets the persisted quiet mode.
func (r *Runner) ConfigQuiet(ctx context.Context, cmd *cli.Command) error {
	return r.configToggle(cmd, repositories.SettingQuietMode, "Quiet mode")
}

// configToggle implements the shared get-or-set behavior of the boolean
// settings commands: no argument prints the current value, an argument parses
// and persists it.
func (r *Runner) configToggle(cmd *cli.Command, key, label string) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	arg := cmd.StringArg("value")
	if arg == "" {
		value, err := r.settings.GetBool(key, false)
		if err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
		return r.writePlain("%s: %v\n", label, value)
	}

	value, err := shared.ParseBoolArg(arg)
	if err != nil {
		return err
	}

	if err := r.settings.SetBool(key, value); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	r.logger.Info("setting updated", "key", key, "value", value)
	return r.writePlain("✓ %s set to %v\n", label, value)
}

// ConfigShow prints all persisted settings.
func (r *Runner) ConfigShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	settings, err := r.settings.All()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(settings, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Settings")
	for key, value := range settings {
		r.writePlain("%s = %s\n", key, value)
	}
	return nil
}
