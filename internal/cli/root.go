package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Makepad-fr/tada-remote/internal/api"
	"github.com/Makepad-fr/tada-remote/internal/auth"
	"github.com/Makepad-fr/tada-remote/internal/config"
	"github.com/Makepad-fr/tada-remote/internal/logging"
	"github.com/Makepad-fr/tada-remote/internal/tui"
	"github.com/Makepad-fr/tada-remote/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App carries the root flags and the collaborators built from them.
type App struct {
	ConfigPath string
	APIURL     string
	Theme      string
	LogFile    string
	Verbose    bool

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	session   *auth.Session
	client    *api.Client
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "tada",
		Short:         "Remote todo list: TUI + CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.NoArgs),
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  tada

  # Account
  tada auth signup --email you@example.com
  tada auth signin --email you@example.com

  # Scriptable commands
  tada add "Buy milk"
  tada ls --group
  tada done 2

  # Local API for development
  tada serve --addr :8000
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", "", "Config file (default ~/.config/tada/config.yaml)")
	flags.StringVar(&app.APIURL, "api", "", "API base URL (overrides config and "+config.EnvAPIURL+")")
	flags.StringVar(&app.Theme, "theme", "", "Output theme ("+strings.Join(ui.Themes, "|")+")")
	flags.StringVar(&app.LogFile, "log-file", "", "Log file (default ~/.tada/tada.log)")
	flags.BoolVarP(&app.Verbose, "verbose", "v", false, "Log at debug level")

	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newServeCmd(app))

	return cmd
}

// Execute runs the root command against os.Args and returns the process exit code.
func Execute() int {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	ui.Fail(cmd.ErrOrStderr(), err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		ui.Hint(cmd.ErrOrStderr(), "Run `tada --help` for usage.")
	}
	return ExitCode(err)
}

// setup layers flags over the loaded config and builds the logger, session
// and API client.
func (a *App) setup() error {
	loader := config.NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
	loader.Path = a.ConfigPath
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if a.APIURL != "" {
		cfg.API.BaseURL = strings.TrimRight(a.APIURL, "/")
	}
	if a.Theme != "" {
		cfg.UI.Theme = a.Theme
	}
	if a.LogFile != "" {
		cfg.Log.File = a.LogFile
	}
	if a.Verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return usageError{err}
	}
	if err := ui.SetTheme(cfg.UI.Theme); err != nil {
		return usageError{err}
	}
	a.cfg = cfg

	logger, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logger, a.logCloser = logger, closer

	store, err := auth.NewTokenStore("")
	if err != nil {
		return err
	}
	session, err := auth.NewSession(store, logger)
	if err != nil {
		return err
	}
	a.session = session
	a.client = api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, session, api.WithLogger(logger))
	return nil
}

func (a *App) close() error {
	if a.logCloser == nil {
		return nil
	}
	err := a.logCloser.Close()
	a.logCloser = nil
	return err
}

func runTUI(ctx context.Context, app *App) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var changes <-chan bool
	w, err := auth.NewWatcher(app.session, app.logger)
	if err != nil {
		app.logger.Warn("credentials watcher disabled", slog.String("error", err.Error()))
	} else {
		defer w.Close()
		go w.Run(ctx)
		changes = w.Changes()
	}

	return tui.Run(ctx, tui.Deps{
		Todos:   app.client,
		Auth:    app.client,
		Session: app.session,
		Logger:  app.logger,
	}, changes)
}

// requireSession fails when no token is available.
func (a *App) requireSession() error {
	if !a.session.LoggedIn() {
		return errNotSignedIn
	}
	return nil
}

var errNotSignedIn = errors.New("not signed in; run `tada auth signin`")

// usageError marks bad input. It maps to exit code 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// usageArgs turns cobra's positional-arg errors into usage errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// ExitCode maps an Execute error onto 0 ok, 1 error, 2 usage.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) || errors.Is(err, pflag.ErrHelp) {
		return 2
	}
	return 1
}
