// Package commands implements the pdf-stitcher command tree.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spherical/pdf-stitcher/cmd/pdf-stitcher/ui"
	"github.com/spherical/pdf-stitcher/internal/config"
	"github.com/spherical/pdf-stitcher/internal/observability"
	"github.com/spherical/pdf-stitcher/pkg/stitcher"
)

// Version is overridden at build time with -ldflags "-X ...commands.Version=..."
var Version = "dev"

// app carries what the persistent pre-run resolves for every subcommand.
type app struct {
	cfgFile  string
	verbose  bool
	noColor  bool
	lang     string
	password string

	cfg    *config.Config
	logger *observability.Logger
	loc    *ui.Localizer
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "pdf-stitcher",
		Short: "Convert PDF pages into stitched long images",
		Long: `pdf-stitcher renders the pages of a PDF, splits them into N ordered groups and
stitches every group into one long image (PNG at high quality, JPEG otherwise).
The images are written individually or bundled as <name>-stitched.zip.

Options come from an optional YAML or TOML config file, STITCH_* environment
variables (a .env file is read when present) and finally command-line flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&a.lang, "lang", "", "message language: en or zh (default from config)")
	rootCmd.PersistentFlags().StringVar(&a.password, "password", "", "password for encrypted PDFs (or PDF_PASSWORD)")

	rootCmd.AddCommand(
		newStitchCmd(a),
		newPlanCmd(a),
		newInfoCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command, canceling in-flight work on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.lang != "" {
		cfg.Locale = a.lang
	}
	if a.password != "" {
		cfg.Output.Password = a.password
	}

	level := cfg.Observability.LogLevel
	if a.verbose {
		level = "debug"
	}

	a.cfg = cfg
	a.logger = observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      cfg.Observability.LogFormat,
		Output:      cmd.ErrOrStderr(),
		ServiceName: "pdf-stitcher",
	})
	a.loc = ui.NewLocalizer(cfg.Locale)

	ui.InitUI(a.noColor)
	return nil
}

func (a *app) client() *stitcher.Client {
	return stitcher.NewClient(stitcher.WithLogger(a.logger))
}

// load opens path with a spinner on stderr.
func (a *app) load(cmd *cobra.Command, path string) (stitcher.Document, error) {
	view := ui.NewStatusView(cmd.ErrOrStderr(), a.loc)
	defer view.Close()

	doc, err := a.client().Load(cmd.Context(), path, a.cfg.Output.Password, view.Handle)
	if err != nil {
		return nil, reported(view, fmt.Errorf("load %s: %w", path, err))
	}
	return doc, nil
}

// shownError is an error the status view already printed.
type shownError struct {
	err error
}

func (e *shownError) Error() string { return e.err.Error() }

func (e *shownError) Unwrap() error { return e.err }

// reported marks err as shown when view has displayed an error status.
func reported(view *ui.StatusView, err error) error {
	if err == nil || !view.Failed() {
		return err
	}
	return &shownError{err: err}
}

// AlreadyReported reports whether err was printed to the user while the
// command ran, so the caller need not print it again.
func AlreadyReported(err error) bool {
	var shown *shownError
	return errors.As(err, &shown)
}
