package commands

import (
	"fmt"

	"github.com/sonemaro/insights/cmd/insights/app"
	"github.com/sonemaro/insights/pkg/logger"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	*Options
	scanFlags
	watchConfig bool
}

func newWatchCommand(opts *Options) *cobra.Command {
	wo := &watchOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "watch [flags] [path]",
		Short: "Keep a rotating project summary on the status line",
		Long: `Explore the project at path (the current directory by default) and rotate
its summary on the last terminal line. After the rotation ends the project
is explored again.

Send SIGHUP to explore immediately. With --watch-config the project is also
explored whenever its .insightsIgnore changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wo.apply(cmd, wo.Config); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			if cmd.Flags().Changed("watch-config") {
				wo.Config.WatchConfig = wo.watchConfig
			}
			return runWatch(rootArg(args), wo)
		},
	}

	wo.scanFlags.register(cmd)
	cmd.Flags().BoolVar(&wo.watchConfig, "watch-config", false,
		"explore again when .insightsIgnore changes")

	return cmd
}

func runWatch(path string, opts *watchOptions) error {
	opts.Log.WithFields(logger.Fields{
		"path":        path,
		"workers":     opts.Config.Workers,
		"maxDepth":    opts.Config.MaxDepth,
		"watchConfig": opts.Config.WatchConfig,
	}).Info("Starting watch")

	application := app.New(opts.Config, path, opts.Log)
	defer application.Shutdown()

	return application.Watch()
}
