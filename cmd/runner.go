package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunebox/internal/auth"
	"github.com/desertthunder/tunebox/internal/library"
	"github.com/desertthunder/tunebox/internal/repositories"
	"github.com/desertthunder/tunebox/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The database, library and session manager are opened lazily by [Runner.open], so commands
// that never touch storage (setup, help) do not create a database file.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer
	input  *bufio.Reader

	db      *sql.DB
	store   repositories.Store
	songs   *repositories.SongRepository
	lib     *library.Library
	manager *auth.Manager
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
	DB     *sql.DB            // DB is used instead of opening Config.Database when set
	Store  repositories.Store // Store replaces the SQLite key-value store when set
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

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		input:  bufio.NewReader(opts.Input),
		db:     opts.DB,
		store:  opts.Store,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, userCommand, favoritesCommand, historyCommand, catalogCommand, playCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger. Components already opened keep the previous one.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Configure loads the config file named by --config and applies the global flag overrides.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	} else {
		r.logger.Debug("config file not found, using defaults", "path", configPath)
	}

	if path := cmd.String("db"); path != "" {
		r.config.Database.Path = path
	}
	if cmd.Bool("ephemeral") {
		r.config.Database.Path = ":memory:"
	}

	level, err := shared.ParseLogLevel(r.config.Logging.Level)
	if err != nil {
		return ctx, err
	}
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// open prepares storage, the library and the session manager, then restores the session.
//
// Each CLI invocation is a fresh start: whatever session was persisted is picked up again.
func (r *Runner) open(ctx context.Context) error {
	if r.manager != nil {
		return nil
	}

	if r.db == nil {
		r.logger.Debug("opening database", "path", r.config.Database.Path)
		db, err := shared.OpenDatabase(r.config.Database)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrStorageUnavailable, err)
		}
		r.db = db
	}
	if r.store == nil {
		r.store = repositories.NewSQLiteStore(r.db)
	}

	r.songs = repositories.NewSongRepository(r.db)
	r.lib = library.New(library.Options{
		Store:        r.store,
		Logger:       r.logger,
		HistoryLimit: r.config.Library.HistoryLimit,
	})
	r.manager = auth.NewManager(auth.ManagerOpts{
		Store:             r.store,
		Collections:       r.lib,
		Logger:            r.logger,
		MinPasswordLength: r.config.Auth.MinPasswordLength,
	})

	r.lib.OnFavoritesChanged(func() {
		if r.manager.IsAuthenticated() {
			r.manager.HandleFavoritesChanged(ctx)
			return
		}
		r.lib.SaveDefaults(ctx)
	})
	r.lib.OnPlaybackEnded(func(string) {
		if r.manager.IsAuthenticated() {
			r.manager.HandlePlaybackEnded(ctx)
			return
		}
		r.lib.SaveDefaults(ctx)
	})

	r.manager.Init(ctx)
	return nil
}

// Close releases the database.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
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
