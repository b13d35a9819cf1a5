package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunevault/internal/catalog"
	"github.com/desertthunder/tunevault/internal/principal"
	"github.com/desertthunder/tunevault/internal/repositories"
	"github.com/desertthunder/tunevault/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The store is opened on first use and shared by every command in the process, as is the session set.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
	sessions   *catalog.Sessions
	store      *repositories.Store
	catalog    *catalog.Catalog
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	Sessions   *catalog.Sessions
}

// NewRunner creates a new Runner with the provided configuration
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Sessions == nil {
		opts.Sessions = catalog.NewSessions()
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
		sessions:   opts.Sessions,
	}
}

// SetLogger replaces the logger used by commands opened after the call.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, artifactCommand, sessionCommand, selftestCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before loads the configuration named by --config and applies logging and database overrides.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		config, found, err := shared.ResolveConfig(r.configPath)
		if err != nil {
			return ctx, fmt.Errorf("failed to load config: %w", err)
		}
		if found {
			r.logger.Debug("loaded config", "path", r.configPath)
			r.config = config
		}
	}

	if path := cmd.String("database"); path != "" {
		r.config.Database.Path = path
	}

	level := r.config.Log.Level
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if err := shared.ApplyLogLevel(r.logger, level); err != nil {
		return ctx, err
	}

	return ctx, nil
}

// after releases the store, if one was opened.
func (r *Runner) after(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

// openStore opens and initializes the configured database once per Runner.
func (r *Runner) openStore() (*repositories.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	dbc := r.config.Database
	store, err := repositories.OpenStore(dbc.Path, dbc.BusyTimeoutMS)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", dbc.Path, err)
	}
	if dbc.Path != shared.MemoryPath {
		shared.ConfigureDatabase(store.DB(), dbc.MaxOpenConns, dbc.MaxIdleConns)
	}

	seed := r.config.Seed
	created, err := store.Initialize(seed.Username, seed.Password)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize database %s: %w", dbc.Path, err)
	}
	if created {
		r.logger.Info("seeded default account", "user", seed.Username)
		if seed.UsesDefaultPassword() {
			r.logger.Warn("default account uses the well-known test password, change seed.password before real use", "user", seed.Username)
		}
	}

	r.store = store
	return store, nil
}

// openCatalog returns the catalog over the shared store and session set.
func (r *Runner) openCatalog() (*catalog.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	store, err := r.openStore()
	if err != nil {
		return nil, err
	}

	r.catalog = catalog.NewFromStore(store, r.sessions, r.logger)
	return r.catalog, nil
}

// principalFor builds the acting principal from credentials.
func (r *Runner) principalFor(username, password string, admin bool) *principal.Principal {
	if admin {
		return principal.NewAdministrator(username, password, principal.WithLogger(r.logger))
	}
	return principal.NewUser(username, password, principal.WithLogger(r.logger))
}

// Close releases the store.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	r.catalog = nil
	return err
}

// report prints a principal outcome. Rejections are not errors.
func (r *Runner) report(res principal.Result) error {
	if res.OK() {
		return r.writePlain("✓ %s (id %d)\n", res.Message, res.ArtifactID)
	}
	return r.writePlain("✗ %s\n", res.Message)
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
