package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/tidalq/tidalq/internal/services"
	"github.com/tidalq/tidalq/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var resolver *services.TidalService
	if config.Credentials.Tidal.ClientID != "" {
		if svc, err := services.NewTidalService(config.Credentials.Tidal.Map()); err == nil {
			resolver = svc
		} else {
			logger.Warnf("tidal service unavailable %v", err)
		}
	}

	player := services.NewAudioService(config.Playback.BaseURL, nil)

	// Open the database only once setup has created it; commands that need it
	// point the user at 'tidalq setup database' otherwise.
	var db *sql.DB
	if _, err := os.Stat(config.Database.Path); err == nil {
		if opened, err := shared.NewDatabase(config.Database.Path); err == nil {
			shared.ConfigureDatabase(opened, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
			db = opened
			defer db.Close()
		} else {
			logger.Warnf("failed to open database %v", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		DB:       db,
		Resolver: resolver,
		Player:   player,
		Logger:   logger,
	})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command tree for the given runner.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "tidalq",
		Usage:    "Dispatch Tidal links into a playback queue",
		Version:  "0.1.0",
		Commands: r.register(),
	}
}
