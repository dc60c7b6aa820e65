// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// playCommand dispatches a Tidal link into the playback queue.
func playCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "play",
		Aliases: []string{"p"},
		Usage:   "Classify a Tidal link and queue its tracks on the playback backend",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "direct",
				Usage: "Forward the URL to the backend without resolving",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress per-track progress output",
			},
			&cli.StringFlag{
				Name:    "export",
				Aliases: []string{"o"},
				Usage:   "Write the resolved track list to a CSV file",
			},
		},
		Action: r.Play,
	}
}

// setupCommand handles setup operations for database and authentication.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "auth",
				Usage: "Authorize with Tidal and store the session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "callback",
						Usage: "Use the browser redirect flow instead of the device flow",
					},
				},
				Action: r.SetupAuth,
			},
		},
	}
}

// configCommand reads and writes the persisted playback settings.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Read and write persisted settings",
		Commands: []*cli.Command{
			{
				Name:  "direct",
				Usage: "Get or set direct streaming mode (true/false)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "value",
					},
				},
				Action: r.ConfigDirect,
			},
			{
				Name:  "quiet",
				Usage: "Get or set quiet mode (true/false)",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "value",
					},
				},
				Action: r.ConfigQuiet,
			},
			{
				Name:  "show",
				Usage: "Print all persisted settings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ConfigShow,
			},
		},
	}
}

// statusCommand reports session and backend health.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Check session state and playback backend health",
		Action: r.Status,
	}
}

// tuiCommand returns the top-level TUI command for interactive link dispatch.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI to preview and queue a Tidal link",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "direct",
				Usage: "Forward the URL to the backend without resolving",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress per-track progress output",
			},
		},
		Action: r.TUI,
	}
}
