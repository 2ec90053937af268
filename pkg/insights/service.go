/*
Package insights runs the explore cycle of a project root.

One cycle loads the .insightsIgnore rules, walks the tree, reduces the
entries to project statistics and rotates the summary lines through a
Display. When the rotation ends a one-shot timer starts the next cycle, so
only one scan is ever in flight.

Everything that changes state happens on the goroutine running Run:
external triggers, rotation ticks and the re-explore timer are all received
there. Trigger and CancelScan may be called from any goroutine.

	svc := insights.New(insights.Options{
		Root:     root,
		Fs:       afero.NewOsFs(),
		Scanner:  sc,
		Display:  bar,
		Notifier: popups,
		Output:   os.Stderr,
		Logger:   log,
	})
	svc.Trigger()
	err := svc.Run(ctx)
*/
package insights

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sonemaro/insights/pkg/cycle"
	"github.com/sonemaro/insights/pkg/ignore"
	"github.com/sonemaro/insights/pkg/logger"
	"github.com/sonemaro/insights/pkg/scanner"
	"github.com/sonemaro/insights/pkg/stats"
	"github.com/sonemaro/insights/pkg/util"
	"github.com/spf13/afero"
	"golang.org/x/exp/maps"
)

// ErrNoWorkspace is returned when there is no directory to explore.
var ErrNoWorkspace = errors.New("no workspace or directory is open")

const exploringTitle = "Exploring environment..."

// Options configures a Service. Root, Fs and Scanner are required.
type Options struct {
	Root    string
	Fs      afero.Fs
	Scanner scanner.Scanner

	Display  Display
	Notifier Notifier

	// Output receives the output channel lines.
	Output io.Writer

	Clock  clockwork.Clock
	Logger logger.Logger
}

// Service drives the explore cycle of one root.
type Service struct {
	root    string
	fs      afero.Fs
	scanner scanner.Scanner
	display Display
	notify  Notifier
	out     *Channel
	clock   clockwork.Clock
	log     logger.Logger

	triggers chan struct{}

	mu    sync.Mutex
	token *scanToken

	// owned by the Run goroutine
	sched    *cycle.Scheduler
	cycler   *cycle.Cycler
	settings ignore.Settings
}

// scanToken is cancelled by CancelScan. It is checked once, right before
// the first summary line of its scan.
type scanToken struct {
	cancelled atomic.Bool
}

// Report is the outcome of one scan.
type Report struct {
	Root     string
	Stats    stats.ProjectStats
	Rules    *ignore.Rules
	Ignored  []string
	Errors   map[string]error
	Duration time.Duration
}

// New creates a Service. Missing surfaces are replaced by no-ops.
func New(opts Options) *Service {
	if opts.Display == nil {
		opts.Display = nopDisplay{}
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	return &Service{
		root:     opts.Root,
		fs:       opts.Fs,
		scanner:  opts.Scanner,
		display:  opts.Display,
		notify:   opts.Notifier,
		out:      NewChannel(opts.Output),
		clock:    opts.Clock,
		log:      opts.Logger.Named("insights"),
		triggers: make(chan struct{}, 1),
		sched:    cycle.NewScheduler(opts.Clock),
	}
}

// Trigger requests a full rescan. Requests made while one is pending are
// merged.
func (s *Service) Trigger() {
	select {
	case s.triggers <- struct{}{}:
	default:
	}
}

// CancelScan cancels the scan in flight. A cancelled scan never shows a
// summary line and arms no timer.
func (s *Service) CancelScan() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != nil {
		s.token.cancelled.Store(true)
	}
}

// Run processes triggers and timers until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	s.log.WithFields(logger.Fields{
		"root": s.root,
	}).Info("Service started")

	defer func() {
		s.sched.Stop()
		s.display.Hide()
		s.log.Info("Service stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.triggers:
			s.rescan(ctx)
		case <-s.sched.Ticks():
			s.tick()
		case <-s.sched.Fired():
			s.sched.ClearOnce()
			s.log.Debug("Re-explore timer fired")
			s.rescan(ctx)
		}
	}
}

// rescan runs one scan and starts its rotation.
func (s *Service) rescan(ctx context.Context) {
	token := &scanToken{}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.sched.Stop()
	s.cycler = nil

	report, err := s.Scan(ctx)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoWorkspace):
			s.out.Error("No workspace or directory is open exploring canceled")
			s.notify.Error("No workspace or directory is open Insights unavailable")
			s.display.Unavailable(cycle.UnavailableLine)
		case ctx.Err() != nil:
			s.log.Debug("Scan interrupted by shutdown")
		default:
			s.out.Error("%v", err)
			s.notify.Error(err.Error())
			s.display.Unavailable(cycle.UnavailableLine)
		}
		return
	}

	if token.cancelled.Load() {
		s.log.WithFields(logger.Fields{
			"root": s.root,
		}).Info("Scan cancelled before the first summary line")
		return
	}

	s.settings = report.Rules.Settings
	s.cycler = cycle.New(cycle.NewSummary(report.Stats))
	s.sched.Repeat(s.settings.Explore())
	s.display.Show(s.cycler.Start())

	s.log.WithFields(logger.Fields{
		"explore": s.settings.Explore(),
	}).Debug("Rotation started")
}

// tick shows the next summary line. After the idle line it hands over to
// the re-explore timer.
func (s *Service) tick() {
	if s.cycler == nil {
		s.sched.ClearRepeat()
		return
	}

	// timers are switched before the line is shown
	line, done := s.cycler.Tick()
	if done {
		s.sched.ClearRepeat()
		s.sched.Once(s.settings.ReExplore())
		s.log.WithFields(logger.Fields{
			"reExplore": s.settings.ReExplore(),
		}).Debug("Rotation finished")
	}
	s.display.Show(line)
}

// Scan performs one complete scan of the root without touching the timers.
func (s *Service) Scan(ctx context.Context) (*Report, error) {
	s.out.Info("Exploring environment")
	start := s.clock.Now()

	if err := s.checkRoot(); err != nil {
		return nil, err
	}

	rules := s.loadRules()

	s.display.Busy(exploringTitle)
	result, err := s.scanner.Walk(ctx, s.root, rules)
	if err != nil {
		return nil, fmt.Errorf("failed to explore %s: %w", s.root, err)
	}

	for _, name := range result.Ignored {
		s.out.Info("%s ignored", name)
	}
	paths := maps.Keys(result.Errors)
	slices.Sort(paths)
	for _, path := range paths {
		walkErr := result.Errors[path]
		var rde *scanner.ReadDirError
		if errors.As(walkErr, &rde) {
			s.out.Error("%v", rde)
			continue
		}
		s.log.WithFields(logger.Fields{
			"path":  path,
			"error": walkErr,
		}).Warn("Entry skipped")
	}

	elapsed := s.clock.Now().Sub(start)
	s.out.Info("exploring environment took %dms", elapsed.Milliseconds())

	ps := stats.Reduce(result.Entries)
	s.log.WithFields(logger.Fields{
		"files":      ps.TotalFiles,
		"folders":    ps.Folders,
		"categories": ps.TotalCategories,
		"size":       util.FormatSize(ps.TotalSize),
		"duration":   elapsed,
	}).Info("Scan completed")

	return &Report{
		Root:     s.root,
		Stats:    ps,
		Rules:    rules,
		Ignored:  result.Ignored,
		Errors:   result.Errors,
		Duration: elapsed,
	}, nil
}

// loadRules reads the rules of this scan. Problems with the rules file never
// abort the scan.
func (s *Service) loadRules() *ignore.Rules {
	rules, err := ignore.Load(s.fs, s.root)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to load rules, using defaults")
		s.out.Error("%v", err)
		return ignore.Defaults()
	}

	if rules.FromFile {
		s.out.Info("insightsIgnore exist getting ignore")
	} else {
		s.out.Info("insightsIgnore not exist. Using default config")
	}
	for _, w := range rules.Warnings {
		s.notify.Warn(w)
	}

	s.log.WithFields(logger.Fields{
		"patterns": rules.Patterns.Len(),
		"settings": rules.Settings.Keys(),
		"warnings": len(rules.Warnings),
	}).Debug("Rules loaded")

	return rules
}

func (s *Service) checkRoot() error {
	if s.root == "" {
		return ErrNoWorkspace
	}
	info, err := s.fs.Stat(s.root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoWorkspace, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoWorkspace, s.root)
	}
	return nil
}

// CreateIgnoreFile writes the default rules file into the root.
func (s *Service) CreateIgnoreFile() error {
	if err := s.checkRoot(); err != nil {
		s.out.Error("No workspace or directory is open create insightsIgnore canceled")
		s.notify.Error("Open workspace or folder to create insightsIgnore")
		return err
	}

	if err := ignore.WriteDefault(s.fs, s.root); err != nil {
		if errors.Is(err, ignore.ErrConfigExists) {
			s.out.Error("insightsIgnore file already exist")
			s.notify.Error("insightsIgnore file already exist.")
			return err
		}
		s.out.Error("%v", err)
		s.notify.Error(err.Error())
		return err
	}

	s.log.WithFields(logger.Fields{
		"path": ignore.Path(s.root),
	}).Info("Rules file created")
	s.notify.Info("insightsIgnore file created you may want to edit this file")
	return nil
}
