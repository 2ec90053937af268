/*
Package output renders the statistics of a scan as a text table, JSON or
YAML.

Basic usage:

	formatter := output.NewFormatter(output.Config{
		Format:     output.FormatText,
		WithColors: true,
	}, log)

	text, err := formatter.Format(report)
*/
package output

import (
	"fmt"
	"time"

	"github.com/sonemaro/insights/pkg/logger"
	"github.com/sonemaro/insights/pkg/stats"
)

// Format represents the output format type
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// Config holds formatter configuration
type Config struct {
	Format     Format
	WithColors bool
}

// Report is what gets rendered.
type Report struct {
	Root      string
	Stats     stats.ProjectStats
	Ignored   []string
	Errors    int
	Duration  time.Duration
	Generated time.Time
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(Report) (string, error)
}

// formatter implements the Formatter interface
type formatter struct {
	config Config
	log    logger.Logger
}

// NewFormatter creates a new formatter instance
func NewFormatter(config Config, log logger.Logger) Formatter {
	return &formatter{
		config: config,
		log:    log,
	}
}

// Format renders report according to the configured format
func (f *formatter) Format(report Report) (string, error) {
	f.log.WithFields(logger.Fields{
		"format":     f.config.Format,
		"withColors": f.config.WithColors,
		"files":      report.Stats.TotalFiles,
	}).Debug("Starting format operation")

	switch f.config.Format {
	case FormatText:
		return f.formatText(report)
	case FormatJSON:
		return f.formatJSON(report)
	case FormatYAML:
		return f.formatYAML(report)
	default:
		err := fmt.Errorf("unsupported format: %s", f.config.Format)
		f.log.Error(err.Error())
		return "", err
	}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, format := range Formats {
		if string(format) == s {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported format: %s", s)
}
