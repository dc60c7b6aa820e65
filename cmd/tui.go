package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidalq/tidalq/internal/shared"
	"github.com/tidalq/tidalq/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for a single link dispatch.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
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

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/tidalq-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.dispatcher, opts, rawURL)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
