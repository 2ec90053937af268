// Package config loads the settings of the insights command from the
// environment.
//
// # Environment Variables
//
//	INSIGHTS_WORKERS       Number of file reading workers (default: 1)
//	INSIGHTS_MAX_DEPTH     Maximum directory depth, -1 for unlimited (default: -1)
//	INSIGHTS_RATE_LIMIT    File reads per second, 0 for unlimited
//	INSIGHTS_BUFFER_SIZE   Read buffer size in bytes (default: 32768)
//	INSIGHTS_OUTPUT        Report format: text|json|yaml
//	INSIGHTS_OUTPUT_FILE   Report file path (empty for stdout)
//	INSIGHTS_WATCH_CONFIG  Rescan when .insightsIgnore changes (true/false)
//	INSIGHTS_NO_COLOR      Disable colored output (true/false)
//	INSIGHTS_LOG_FORMAT    Log encoding: console|json
//	INSIGHTS_VERBOSE       Verbosity level (number of 'v's)
//
// Command line flags override these values. The timing of the summary
// rotation is not configured here; it lives in the project's .insightsIgnore
// file.
//
// # Validation
//
//   - Workers must be positive and not exceed CPU cores * 4
//   - MaxDepth must be -1 (unlimited) or positive
//   - Output must be one of: text, json, yaml
//   - BufferSize must be at least 64 bytes
//   - RateLimit must be non-negative
package config
