package commands

import (
	"github.com/sonemaro/insights/cmd/insights/app"
	"github.com/spf13/cobra"
)

func newInitCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create a default .insightsIgnore",
		Long: `Create a .insightsIgnore with the default rules in the project at path
(the current directory by default). An existing file is never overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application := app.New(opts.Config, rootArg(args), opts.Log)
			defer application.Shutdown()

			return application.Init()
		},
	}
}
