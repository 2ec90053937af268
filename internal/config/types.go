package config

// Constants for configuration limits and defaults
const (
	// DefaultWorkers keeps file reads sequential unless asked otherwise
	DefaultWorkers = 1

	// UnlimitedDepth represents unlimited directory depth
	UnlimitedDepth = -1

	// DefaultMaxDepth walks the whole tree. Symbolic link cycles are cut by
	// the scanner, not by the depth limit.
	DefaultMaxDepth = UnlimitedDepth

	// MinBufferSize is the minimum allowed buffer size in bytes
	MinBufferSize = 64

	// DefaultBufferSize is the default buffer size in bytes
	DefaultBufferSize = 32 * 1024

	// MaxWorkerMultiplier is the maximum multiple of CPU cores for worker count
	MaxWorkerMultiplier = 4

	// DefaultOutput is the report format used when none is given
	DefaultOutput = "text"

	// DefaultLogFormat is the log encoding used when none is given
	DefaultLogFormat = "console"
)

// validOutputFormats contains the list of supported report formats
var validOutputFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}
