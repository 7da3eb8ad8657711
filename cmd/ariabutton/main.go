// Package main is the entry point for the ariabutton terminal demo.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/ariabutton/internal/app"
	"github.com/dshills/ariabutton/internal/logging"
	"github.com/dshills/ariabutton/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runFlags are the flags of the root command.
type runFlags struct {
	opts    app.Options
	logFile string
}

func newRootCmd() *cobra.Command {
	var f runFlags

	root := &cobra.Command{
		Use:   "ariabutton",
		Short: "Accessible button widgets in the terminal",
		Long: `ariabutton draws a row of accessible buttons and reports every press.

Buttons come from a TOML or YAML configuration file. Presses can be handled
by a Lua script, recorded to a SQLite history and streamed to websocket
clients.

Examples:
  ariabutton                                   # Default buttons
  ariabutton -c buttons.toml --watch           # Live-reloaded configuration
  ariabutton -s press.lua --log-file log       # Script press handlers
  ariabutton --history presses.db              # Record presses
  ariabutton --listen 127.0.0.1:7070           # Stream presses on /events
  ariabutton stats --history presses.db        # Press counts
  ariabutton config -c buttons.yaml -q button  # Query the configuration`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), f)
		},
	}

	root.PersistentFlags().StringVarP(&f.opts.ConfigPath, "config", "c", "", "Path to configuration file")
	root.Flags().StringVarP(&f.opts.ScriptPath, "script", "s", "", "Lua script defining on_press")
	root.Flags().StringVar(&f.opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config")
	root.Flags().StringVar(&f.logFile, "log-file", "", "Append log output to this file")
	root.Flags().BoolVar(&f.opts.Watch, "watch", false, "Reload the configuration when it changes")
	root.Flags().StringVar(&f.opts.HistoryPath, "history", "", "Record presses to this SQLite database")
	root.Flags().StringVar(&f.opts.Listen, "listen", "", "Serve a websocket press feed on this address")

	root.PreRunE = func(cmd *cobra.Command, args []string) error {
		if f.opts.LogLevel != "" && !logging.ValidLevel(f.opts.LogLevel) {
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", f.opts.LogLevel)
		}
		return nil
	}

	root.AddCommand(
		newConfigCmd(&f.opts.ConfigPath),
		newStatsCmd(),
		newKeysCmd(),
		newTriggersCmd(),
		newVersionCmd(),
	)
	return root
}

// runDemo runs the interactive application until it quits.
func runDemo(ctx context.Context, f runFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts := f.opts

	if f.logFile != "" {
		file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer file.Close()
		opts.LogOutput = file
	}

	application, err := app.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	renderer, err := term.NewRenderer(term.DefaultTheme())
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := application.SetRenderer(renderer); err != nil {
		return fmt.Errorf("failed to set renderer: %w", err)
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(ctx); err != nil && !errors.Is(err, app.ErrQuit) {
		return err
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ariabutton %s\n", version)
			fmt.Fprintf(out, "Commit: %s\n", commit)
			fmt.Fprintf(out, "Built: %s\n", date)
		},
	}
}
