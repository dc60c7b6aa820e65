package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/tidalq/tidalq/internal/repositories"
	"github.com/tidalq/tidalq/internal/services"
	"github.com/tidalq/tidalq/internal/shared"
	"github.com/tidalq/tidalq/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	db         *sql.DB
	resolver   *services.TidalService
	player     services.Player
	creds      *repositories.CredentialsRepository
	settings   *repositories.SettingsRepository
	gate       *tasks.Gatekeeper
	executor   *tasks.Executor
	dispatcher *tasks.Dispatcher
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	DB       *sql.DB
	Resolver *services.TidalService
	Player   services.Player
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
//
// Repositories, the session gate, and the dispatcher are wired only when
// their dependencies are present: without a database the play and config
// commands refuse with a setup hint instead of failing mid-flow.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:   opts.Config,
		db:       opts.DB,
		resolver: opts.Resolver,
		player:   opts.Player,
		logger:   opts.Logger,
		output:   opts.Output,
		executor: tasks.NewExecutor(opts.Config.Queue.MaxResolverCalls),
	}

	if r.db != nil {
		r.creds = repositories.NewCredentialsRepository(r.db)
		r.settings = repositories.NewSettingsRepository(r.db)
	}

	if r.creds != nil && r.resolver != nil {
		gate, err := tasks.NewGatekeeper(r.creds, r.resolver, r.executor)
		if err != nil {
			r.logger.Warnf("session gate unavailable %v", err)
		} else {
			r.gate = gate
		}
	}

	if r.resolver != nil && r.player != nil && r.gate != nil {
		r.dispatcher = tasks.NewDispatcher(r.resolver, r.player, r.gate, r.executor)
	}

	return r
}

// SetLogger swaps the runner's logger, e.g. to redirect logs to a file while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		playCommand, setupCommand, configCommand, statusCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// ensureStore verifies the database-backed pieces are wired, pointing the user
// at setup when they are not.
func (r *Runner) ensureStore() error {
	if r.settings == nil || r.creds == nil {
		return fmt.Errorf("%w: database not initialized, run 'tidalq setup database' first", shared.ErrMissingConfig)
	}
	return nil
}

// ensureDispatcher verifies the full dispatch pipeline is wired.
func (r *Runner) ensureDispatcher() error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	if r.resolver == nil {
		return fmt.Errorf("%w: Tidal client_id must be set in config.toml", shared.ErrMissingCredentials)
	}
	if r.dispatcher == nil {
		return fmt.Errorf("%w: dispatcher not initialized", shared.ErrPlayerUnavailable)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
