package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/company/fastapi-configurator/internal/bundle"
	"github.com/company/fastapi-configurator/internal/config"
	"github.com/company/fastapi-configurator/internal/exitcodes"
	"github.com/company/fastapi-configurator/internal/output"
	"github.com/company/fastapi-configurator/internal/project"
	"github.com/company/fastapi-configurator/internal/ui"
)

// App is the dependency container for all CLI commands.
type App struct {
	rootCmd  *cobra.Command
	version  string
	commit   string
	date     string
	output   *ui.Output
	loader   *config.SettingsLoader
	settings *config.Settings

	settingsPath string
	verbose      bool
	noColor      bool

	// interactive reports whether prompts may be shown.
	interactive func() bool
	clipboard   *ui.Clipboard
}

// NewApp creates the root command and registers all subcommands.
func NewApp(version, commit, date string) *App {
	app := &App{
		version:     version,
		commit:      commit,
		date:        date,
		output:      ui.NewOutput(),
		loader:      config.NewSettingsLoader(),
		interactive: ui.IsInteractive,
		clipboard:   ui.NewClipboard(),
	}

	root := &cobra.Command{
		Use:   "fastapi-configurator",
		Short: "Configure and generate FastAPI full-stack projects",
		Long: "Walks through the options of a FastAPI full-stack project, resolves their\n" +
			"dependencies and renders the project template into a ZIP archive or directory.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.settingsPath, "settings", "", "settings file (default ~/.config/fastapi-configurator/settings.yaml)")
	pf.BoolVarP(&app.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&app.noColor, "no-color", false, "disable colored output")
	pf.String("templates", "", "template bundle: base URL, templates.json file or template directory (overrides FASTAPI_CONFIGURATOR_BUNDLE_URL)")
	pf.String("token", "", "bearer token for the template bundle URL (overrides FASTAPI_CONFIGURATOR_BUNDLE_TOKEN)")
	pf.Duration("timeout", config.DefaultTimeout, "template download timeout")

	for key, flag := range map[string]string{
		"bundle_url":   "templates",
		"bundle_token": "token",
		"timeout":      "timeout",
		"no_color":     "no-color",
		"debug":        "verbose",
	} {
		if err := app.loader.BindFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(
		app.newNewCmd(),
		app.newGenerateCmd(),
		app.newExportCmd(),
		app.newAnswersCmd(),
		app.newPresetsCmd(),
		app.newBundleCmd(),
		app.newVersionCmd(),
	)

	app.rootCmd = root
	return app
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func (a *App) ExecuteContext(ctx context.Context) error {
	return a.rootCmd.ExecuteContext(ctx)
}

// SetArgs replaces os.Args for the next Execute (used by tests).
func (a *App) SetArgs(args []string) {
	a.rootCmd.SetArgs(args)
}

// SetOutput redirects user-facing output (used by tests).
func (a *App) SetOutput(out, err io.Writer) {
	a.output = ui.NewOutputTo(out, err)
	a.rootCmd.SetOut(out)
	a.rootCmd.SetErr(err)
}

func (a *App) setup() error {
	s, err := a.loader.Load(a.settingsPath)
	if err != nil {
		return &ExitError{Code: exitcodes.ConfigError, Message: err.Error()}
	}
	a.settings = s
	output.SetupLoggingTo(a.output.Stderr(), s.Debug)
	if s.NoColor {
		a.output.SetNoColor(true)
	}
	output.Debug("settings loaded",
		"bundle_url", s.BundleURL,
		"bundle_url_source", a.loader.Source("bundle_url"),
		"timeout", s.Timeout,
		"output_dir", s.OutputDir,
	)
	return nil
}

// openSource opens the configured template bundle.
func (a *App) openSource() (bundle.Source, error) {
	opts := []bundle.Option{bundle.WithTimeout(a.settings.Timeout)}
	if a.settings.BundleToken != "" {
		opts = append(opts, bundle.WithToken(a.settings.BundleToken))
	}
	src, err := bundle.Open(a.settings.BundleURL, opts...)
	if err != nil {
		return nil, classify(err)
	}
	return src, nil
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			a.output.Info("fastapi-configurator %s (commit: %s, built: %s)", a.version, a.commit, a.date)
		},
	}
}

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// classify maps domain errors to exit codes.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var (
		exitErr   *ExitError
		fetchErr  *bundle.FetchError
		verrs     project.ValidationErrors
		fieldErr  *project.FieldError
		presetErr *project.UnknownPresetError
	)
	switch {
	case errors.As(err, &exitErr):
		return exitErr
	case errors.As(err, &fetchErr):
		return &ExitError{Code: exitcodes.NetworkError, Message: err.Error()}
	case errors.As(err, &verrs), errors.As(err, &fieldErr):
		return &ExitError{Code: exitcodes.ValidationError, Message: err.Error()}
	case errors.As(err, &presetErr):
		return &ExitError{Code: exitcodes.UsageError, Message: err.Error()}
	case errors.Is(err, context.Canceled):
		return &ExitError{Code: exitcodes.GeneralError, Message: "cancelled"}
	}
	return &ExitError{Code: exitcodes.GenerationError, Message: fmt.Sprintf("generation failed: %v", err)}
}

// reportValidation prints each field error on its own line.
func (a *App) reportValidation(err error) {
	var verrs project.ValidationErrors
	if !errors.As(err, &verrs) {
		a.output.Error("%v", err)
		return
	}
	for _, fe := range verrs {
		a.output.Error("%s: %s", fe.Field, fe.Message)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
