/*
Package logger wraps uber-go/zap behind a small interface used by every
insights package.

Verbosity Levels:

	-1: Warn, Error (quiet, the CLI default)
	 0: Info + Level -1 (default)
	 1: Debug + Level 0
	 2: Trace + Level 1

Structured Logging:

	log.WithFields(logger.Fields{
	    "root":    "/src/project",
	    "entries": 412,
	}).Info("Exploration finished")

Components tag their entries with Named:

	scanLog := log.Named("scanner")

Output Example (JSON):

	{
	    "level": "info",
	    "ts": "2024-01-20T15:04:05.000Z",
	    "component": "scanner",
	    "message": "Exploration finished",
	    "root": "/src/project",
	    "entries": 412
	}

The logger is safe for concurrent use by multiple goroutines.
*/
package logger
