/*
Package commands implements the CLI of insights. The root command carries
the flags shared by every subcommand: verbosity, colors and log format.
Configuration is read from INSIGHTS_* environment variables first and then
overridden by the flags given on the command line.
*/
package commands

import (
	"fmt"
	"os"

	"github.com/sonemaro/insights/internal/config"
	"github.com/sonemaro/insights/pkg/logger"
	"github.com/spf13/cobra"
)

// Options holds command-line options that apply to all commands
type Options struct {
	Config    *config.Config
	Log       logger.Logger
	Verbose   int
	NoColor   bool
	LogFormat string
}

// NewRootCommand creates the root command for the application
func NewRootCommand() *cobra.Command {
	opts := &Options{
		Config: &config.Config{},
		Log:    logger.Nop(),
	}

	rootCmd := &cobra.Command{
		Use:   "insights [command] [flags] [path]",
		Short: "Project statistics for the terminal",
		Long: `insights explores a project directory and summarizes it: how much code
was written, which languages are used and which files are the largest.

The watch command keeps a rotating summary on the last terminal line and
explores the project again after every rotation. Entries can be left out
with a .insightsIgnore file in the project root, see "insights init".`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeCommand(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags that apply to all commands
	rootCmd.PersistentFlags().CountVarP(&opts.Verbose, "verbose", "v",
		"log verbosity: -v info, -vv debug, -vvv trace")
	rootCmd.PersistentFlags().BoolVar(&opts.NoColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "",
		"log encoding: console|json")

	rootCmd.AddCommand(
		newWatchCommand(opts),
		newReportCommand(opts),
		newInitCommand(opts),
		newVersionCommand(opts),
	)

	return rootCmd
}

// initializeCommand performs common initialization for all commands
func initializeCommand(cmd *cobra.Command, opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override config with command line flags
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.Verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.NoColor
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Without -v only warnings and errors are logged, the output channel
	// already tells the user what happens.
	opts.Log = logger.NewLogger(logger.Config{
		Verbosity: cfg.Verbose + logger.Quiet,
		Format:    logger.Format(cfg.LogFormat),
		Output:    os.Stderr,
	})
	opts.Config = &cfg

	opts.Log.WithFields(logger.Fields{
		"command": cmd.Name(),
		"config":  cfg.String(),
	}).Debug("Initializing command")

	return nil
}

// rootArg returns the project root named by args, "." when absent.
func rootArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
