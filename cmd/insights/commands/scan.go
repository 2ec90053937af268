package commands

import (
	"github.com/sonemaro/insights/internal/config"
	"github.com/spf13/cobra"
)

// scanFlags are the walk settings shared by watch and report.
type scanFlags struct {
	workers   int
	maxDepth  int
	rateLimit int
}

func (f *scanFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.workers, "workers", "w", config.DefaultWorkers,
		"number of concurrent file readers")
	cmd.Flags().IntVarP(&f.maxDepth, "max-depth", "d", config.DefaultMaxDepth,
		"maximum directory depth to explore (-1 for unlimited)")
	cmd.Flags().IntVarP(&f.rateLimit, "rate-limit", "r", 0,
		"maximum file reads per second (0 for unlimited)")
}

// apply copies the flags given on the command line into cfg and validates
// the result.
func (f *scanFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Workers = f.workers
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = f.rateLimit
	}
	return cfg.Validate()
}
