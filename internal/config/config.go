package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Workers is the number of goroutines reading file contents
	Workers int

	// MaxDepth is the maximum directory depth to walk (-1 for unlimited)
	MaxDepth int

	// RateLimit is the maximum number of file reads per second (0 for unlimited)
	RateLimit int

	// BufferSize is the size of the buffer for file reading
	BufferSize int

	// Output specifies the report format (text, json, or yaml)
	Output string

	// OutputFile is the path to write the report (empty for stdout)
	OutputFile string

	// WatchConfig rescans when the rules file changes
	WatchConfig bool

	// NoColor disables colored output
	NoColor bool

	// LogFormat selects the log encoding (console or json)
	LogFormat string

	// Verbose sets the verbosity level
	Verbose int
}

// Load reads configuration from environment variables and validates it
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("max_depth", DefaultMaxDepth)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("buffer_size", DefaultBufferSize)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("watch_config", false)
	v.SetDefault("no_color", false)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("verbose", 0)

	v.SetEnvPrefix("INSIGHTS")
	v.AutomaticEnv()

	for _, key := range []string{
		"workers", "max_depth", "rate_limit", "buffer_size", "output",
		"output_file", "watch_config", "no_color", "log_format", "verbose",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// verbosity is given as a string of 'v's
	if verboseStr := v.GetString("verbose"); verboseStr != "" && strings.Trim(verboseStr, "v") == "" {
		v.Set("verbose", strings.Count(verboseStr, "v"))
	}

	cfg := Config{
		Workers:     v.GetInt("workers"),
		MaxDepth:    v.GetInt("max_depth"),
		RateLimit:   v.GetInt("rate_limit"),
		BufferSize:  v.GetInt("buffer_size"),
		Output:      v.GetString("output"),
		OutputFile:  v.GetString("output_file"),
		WatchConfig: v.GetBool("watch_config"),
		NoColor:     v.GetBool("no_color"),
		LogFormat:   v.GetString("log_format"),
		Verbose:     v.GetInt("verbose"),
	}

	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers count must be positive")
	}
	if c.Workers > runtime.NumCPU()*MaxWorkerMultiplier {
		return fmt.Errorf("workers count cannot exceed system CPU count * %d", MaxWorkerMultiplier)
	}

	if c.MaxDepth < UnlimitedDepth {
		return fmt.Errorf("max depth must be -1 (unlimited) or positive")
	}

	if !validOutputFormats[c.Output] {
		return fmt.Errorf("invalid output format: must be one of [text json yaml]")
	}

	if c.LogFormat != "" && !validLogFormats[c.LogFormat] {
		return fmt.Errorf("invalid log format: must be one of [console json]")
	}

	if c.BufferSize < 0 {
		return fmt.Errorf("buffer size must be positive")
	}
	if c.BufferSize < MinBufferSize {
		return fmt.Errorf("buffer size must be at least %d bytes", MinBufferSize)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	return nil
}

// String returns a string representation of the configuration
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Workers: %d, MaxDepth: %d, RateLimit: %d, BufferSize: %d, "+
			"Output: %s, OutputFile: %s, WatchConfig: %v, NoColor: %v, "+
			"LogFormat: %s, Verbose: %d}",
		c.Workers, c.MaxDepth, c.RateLimit, c.BufferSize,
		c.Output, c.OutputFile, c.WatchConfig, c.NoColor,
		c.LogFormat, c.Verbose,
	)
}
