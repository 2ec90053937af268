/*
Package app provides the application container of the insights command. It
wires the scanner, the explore service and the terminal surfaces together,
and handles graceful shutdown.

The container owns:
- the logger
- the scanner and its worker pool
- the explore service
- the status bar and popups (watch mode)
- the rules file watcher (watch mode, optional)

Usage:

	a := app.New(cfg, root, log)
	defer a.Shutdown()

	if err := a.Watch(); err != nil {
	    log.Fatal(err)
	}
*/
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/sonemaro/insights/internal/config"
	"github.com/sonemaro/insights/pkg/insights"
	"github.com/sonemaro/insights/pkg/logger"
	"github.com/sonemaro/insights/pkg/output"
	"github.com/sonemaro/insights/pkg/scanner"
	"github.com/sonemaro/insights/pkg/statusbar"
	"github.com/sonemaro/insights/pkg/util"
	"github.com/sonemaro/insights/pkg/watch"
	"github.com/spf13/afero"
)

// resourceInterval is how often resource usage is logged in watch mode
const resourceInterval = 30 * time.Second

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger
	root   string

	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer
	exit   func(code int)

	scanner scanner.Scanner
	service *insights.Service
	bar     *statusbar.Bar
	watcher *watch.Watcher

	ctx     context.Context
	cancel  context.CancelFunc
	signals chan os.Signal
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// New creates an application for the project at root
func New(cfg *config.Config, root string, log logger.Logger) *App {
	if abs, err := filepath.Abs(root); err == nil && root != "" {
		root = abs
	}
	return newApp(cfg, root, log, afero.NewOsFs(), os.Stdout, os.Stderr)
}

func newApp(cfg *config.Config, root string, log logger.Logger, fs afero.Fs, stdout, stderr io.Writer) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		config: cfg,
		log:    log.Named("app"),
		root:   root,
		fs:     fs,
		stdout: stdout,
		stderr: stderr,
		exit:   os.Exit,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}

	a.initComponents()

	a.log.WithFields(logger.Fields{
		"root":     root,
		"workers":  cfg.Workers,
		"maxDepth": cfg.MaxDepth,
		"verbose":  cfg.Verbose,
	}).Info("Application initialized")

	return a
}

// Watch explores the root and keeps the summary rotating until the
// application is shut down.
func (a *App) Watch() (err error) {
	defer a.recoverPanic(&err)

	bar := statusbar.New(statusbar.Config{
		Style:   statusbar.StyleSpinner,
		NoColor: a.config.NoColor,
		Writer:  a.stdout,
	}, a.log)
	service := a.newService(bar, statusbar.NewPopups(bar, a.config.NoColor), bar)

	var watcher *watch.Watcher
	if a.config.WatchConfig {
		watcher, err = watch.New(a.root, watch.DefaultDebounceDelay, service.Trigger, a.log)
		if err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Warn("Rules file will not be watched")
			watcher, err = nil, nil
		}
	}

	a.mu.Lock()
	a.bar, a.service, a.watcher = bar, service, watcher
	a.mu.Unlock()

	a.setupSignalHandling()
	go a.monitorResources(a.ctx)

	service.Trigger()
	if err := service.Run(a.ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("explore loop failed: %w", err)
	}
	return nil
}

// Report explores the root once and writes the statistics to outputPath,
// or to stdout when outputPath is empty.
func (a *App) Report(format output.Format, outputPath string) (err error) {
	defer a.recoverPanic(&err)

	service := a.newService(nil, statusbar.NewPopups(a.stderr, a.config.NoColor), a.stderr)
	a.mu.Lock()
	a.service = service
	a.mu.Unlock()
	a.setupSignalHandling()

	a.log.WithFields(logger.Fields{
		"root":   a.root,
		"format": format,
		"file":   outputPath,
	}).Info("Starting report")

	report, err := service.Scan(a.ctx)
	if err != nil {
		return fmt.Errorf("scan operation failed: %w", err)
	}

	formatter := output.NewFormatter(output.Config{
		Format:     format,
		WithColors: !a.config.NoColor && outputPath == "",
	}, a.log)

	text, err := formatter.Format(output.Report{
		Root:      report.Root,
		Stats:     report.Stats,
		Ignored:   report.Ignored,
		Errors:    len(report.Errors),
		Duration:  report.Duration,
		Generated: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("output formatting failed: %w", err)
	}

	if err := a.writeOutput(text, outputPath); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"files":    report.Stats.TotalFiles,
		"size":     util.FormatSize(report.Stats.TotalSize),
		"duration": report.Duration,
		"errors":   len(report.Errors),
		"outputTo": outputPath,
	}).Info("Report completed")

	return nil
}

// Init writes the default .insightsIgnore into the root.
func (a *App) Init() error {
	service := a.newService(nil, statusbar.NewPopups(a.stderr, a.config.NoColor), a.stderr)
	a.mu.Lock()
	a.service = service
	a.mu.Unlock()
	return service.CreateIgnoreFile()
}

// Shutdown performs a graceful shutdown of the application
func (a *App) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true

	a.log.Debug("Initiating graceful shutdown")

	a.cancel()
	a.stopSignalHandling()
	close(a.done)

	var errs []error
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close watcher: %w", err))
		}
	}
	if a.bar != nil {
		a.bar.Hide()
	}

	if err := errors.Join(errs...); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Shutdown encountered errors")
		return err
	}

	a.log.Debug("Shutdown complete")
	return nil
}

// initComponents initializes the scanner shared by every mode
func (a *App) initComponents() {
	a.scanner = scanner.NewScanner(scanner.Config{
		Workers:    a.config.Workers,
		MaxDepth:   a.config.MaxDepth,
		RateLimit:  a.config.RateLimit,
		BufferSize: a.config.BufferSize,
	}, a.fs, a.log)

	a.log.Debug("Components initialized successfully")
}

func (a *App) newService(display insights.Display, notifier insights.Notifier, out io.Writer) *insights.Service {
	return insights.New(insights.Options{
		Root:     a.root,
		Fs:       a.fs,
		Scanner:  a.scanner,
		Display:  display,
		Notifier: notifier,
		Output:   out,
		Logger:   a.log,
	})
}

// writeOutput writes the formatted output to the specified destination
func (a *App) writeOutput(content string, outputPath string) error {
	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Writing output")

	if outputPath == "" {
		_, err := fmt.Fprintln(a.stdout, content)
		return err
	}

	if err := a.createOutputDirectory(outputPath); err != nil {
		return err
	}

	if err := afero.WriteFile(a.fs, outputPath, []byte(content+"\n"), 0644); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  outputPath,
		}).Error("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Info("Output written successfully")
	return nil
}

// createOutputDirectory ensures the output directory exists
func (a *App) createOutputDirectory(path string) error {
	dir := filepath.Dir(path)
	if err := a.fs.MkdirAll(dir, 0755); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  dir,
		}).Error("Failed to create output directory")
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

func (a *App) recoverPanic(err *error) {
	if r := recover(); r != nil {
		a.log.WithFields(logger.Fields{
			"panic": r,
			"stack": string(debug.Stack()),
		}).Error("Recovered from panic")
		*err = fmt.Errorf("internal error: %v", r)
	}
}

// monitorResources periodically logs system resource usage
func (a *App) monitorResources(ctx context.Context) {
	ticker := time.NewTicker(resourceInterval)
	defer ticker.Stop()

	var m runtime.MemStats
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runtime.ReadMemStats(&m)
			progress := a.scanner.Progress()
			a.log.WithFields(logger.Fields{
				"files":      progress.ProcessedFiles,
				"bytesRead":  util.FormatSize(progress.BytesRead),
				"alloc":      util.FormatSize(int64(m.Alloc)),
				"totalAlloc": util.FormatSize(int64(m.TotalAlloc)),
				"sys":        util.FormatSize(int64(m.Sys)),
				"numGC":      m.NumGC,
				"goroutines": runtime.NumGoroutine(),
			}).Debug("Resource usage stats")
		}
	}
}
