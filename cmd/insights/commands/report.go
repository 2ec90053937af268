package commands

import (
	"fmt"

	"github.com/sonemaro/insights/cmd/insights/app"
	"github.com/sonemaro/insights/pkg/output"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	*Options
	scanFlags
	outputFormat string
	outputFile   string
}

func newReportCommand(opts *Options) *cobra.Command {
	ro := &reportOptions{
		Options: opts,
	}

	cmd := &cobra.Command{
		Use:   "report [flags] [path]",
		Short: "Explore once and print the project statistics",
		Long: `Explore the project at path (the current directory by default) once and
print its statistics per language together with the summary lines.`,
		Example: `  insights report
  insights report -o json -f stats.json ./project`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ro.apply(cmd, ro.Config); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			return runReport(cmd, rootArg(args), ro)
		},
	}

	ro.scanFlags.register(cmd)
	cmd.Flags().StringVarP(&ro.outputFormat, "output", "o", "",
		"output format: text|json|yaml")
	cmd.Flags().StringVarP(&ro.outputFile, "file", "f", "",
		"write output to file instead of stdout")

	return cmd
}

func runReport(cmd *cobra.Command, path string, opts *reportOptions) error {
	name := opts.Config.Output
	if cmd.Flags().Changed("output") {
		name = opts.outputFormat
	}
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}

	file := opts.Config.OutputFile
	if cmd.Flags().Changed("file") {
		file = opts.outputFile
	}

	application := app.New(opts.Config, path, opts.Log)
	defer application.Shutdown()

	return application.Report(format, file)
}
