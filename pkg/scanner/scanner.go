/*
Package scanner walks a project tree and produces a flat list of entries with
their size and content metrics.

The directory walk is depth-first and sequential: a directory is recorded
before its descendants and sibling subtrees are visited one after another.
File contents are measured on a worker pool, and the measurements are put
back by position so the entry order never depends on the worker count.

Basic usage:

	sc := scanner.NewScanner(scanner.Config{
		Workers:  1,
		MaxDepth: -1,
	}, afero.NewOsFs(), log)

	rules, _ := ignore.Load(fs, "/path/to/project")
	result, err := sc.Walk(ctx, "/path/to/project", rules)
*/
package scanner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sonemaro/insights/pkg/extension"
	"github.com/sonemaro/insights/pkg/ignore"
	"github.com/sonemaro/insights/pkg/logger"
	"github.com/sonemaro/insights/pkg/worker"
	"github.com/spf13/afero"
)

const defaultBufferSize = 32 * 1024

// Scanner defines the interface for tree walking operations
type Scanner interface {
	// Walk lists the tree under root, skipping nodes matched by rules.
	Walk(ctx context.Context, root string, rules *ignore.Rules) (Result, error)

	// Progress returns the progress of the current or last walk
	Progress() Progress
}

type scanner struct {
	config Config
	fs     afero.Fs
	log    logger.Logger

	mu        sync.RWMutex
	stats     *ScannerStats
	startTime time.Time
}

// NewScanner creates a Scanner reading from fs.
func NewScanner(config Config, fs afero.Fs, log logger.Logger) Scanner {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.BufferSize <= 0 {
		config.BufferSize = defaultBufferSize
	}

	return &scanner{
		config: config,
		fs:     fs,
		log:    log,
		stats:  NewScannerStats(),
	}
}

// Walk performs one complete walk of root.
func (s *scanner) Walk(ctx context.Context, root string, rules *ignore.Rules) (Result, error) {
	if root == "" {
		return Result{}, fmt.Errorf("no root directory to scan")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("walk interrupted: %w", err)
	}

	stats := NewScannerStats()
	start := time.Now()
	s.mu.Lock()
	s.stats = stats
	s.startTime = start
	s.mu.Unlock()

	s.log.WithFields(logger.Fields{
		"root":     root,
		"workers":  s.config.Workers,
		"maxDepth": s.config.MaxDepth,
	}).Info("Starting walk")

	result := Result{
		Errors: make(map[string]error),
		Stats:  ScanStats{StartTime: start},
	}

	pool, err := worker.NewPool[Metrics](worker.Config{
		Workers:   s.config.Workers,
		RateLimit: s.config.RateLimit,
	})
	if err != nil {
		return result, fmt.Errorf("failed to create worker pool: %w", err)
	}
	if err := pool.Start(ctx); err != nil {
		return result, fmt.Errorf("failed to start worker pool: %w", err)
	}
	defer func() {
		if err := pool.Stop(); err != nil {
			s.log.WithFields(logger.Fields{
				"error": err,
			}).Warn("Error stopping worker pool")
		}
	}()

	w := &walk{scanner: s, stats: stats, pool: pool, rules: rules, result: &result}
	if err := w.dir(ctx, root, 0, nil); err != nil {
		s.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Walk interrupted")
		return result, fmt.Errorf("walk interrupted: %w", err)
	}

	measured, err := pool.Wait()
	if err != nil {
		return result, fmt.Errorf("walk interrupted: %w", err)
	}
	ps := pool.GetStats()
	s.log.WithFields(logger.Fields{
		"workers":   ps.Workers,
		"submitted": ps.Submitted,
		"failed":    ps.Failed,
		"uptime":    ps.Uptime,
	}).Debug("File reads finished")
	s.applyMetrics(&result, measured)

	result.Stats.EndTime = time.Now()
	result.Stats.Duration = result.Stats.EndTime.Sub(start)
	result.Stats.TotalDirs = stats.GetDirectoriesScanned()
	result.Stats.BytesRead = stats.GetBytesRead()
	result.Stats.ErrorCount = len(result.Errors)
	for _, e := range result.Entries {
		if !e.IsDir() {
			result.Stats.TotalFiles++
		}
	}

	s.log.WithFields(logger.Fields{
		"duration": result.Stats.Duration,
		"entries":  len(result.Entries),
		"files":    result.Stats.TotalFiles,
		"skipped":  result.Stats.Skipped,
		"errors":   result.Stats.ErrorCount,
	}).Info("Walk completed")

	return result, nil
}

// applyMetrics attaches measurements to their entries. Files that could not
// be read are dropped from the result.
func (s *scanner) applyMetrics(result *Result, measured []worker.Result[Metrics]) {
	dropped := make(map[int]bool)
	for _, m := range measured {
		entry := &result.Entries[m.ID]
		if m.Err != nil {
			result.Errors[entry.Path] = m.Err
			dropped[m.ID] = true
			continue
		}
		metrics := m.Value
		entry.Metrics = &metrics
	}
	if len(dropped) == 0 {
		return
	}

	kept := result.Entries[:0]
	for i, e := range result.Entries {
		if !dropped[i] {
			kept = append(kept, e)
		}
	}
	result.Entries = kept
}

// walk carries the state of one Walk call.
type walk struct {
	*scanner
	stats  *ScannerStats
	pool   worker.Pool[Metrics]
	rules  *ignore.Rules
	result *Result
}

// dir lists path and descends into its subdirectories. ancestors holds the
// followed stat of every directory above path.
func (w *walk) dir(ctx context.Context, path string, depth int, ancestors []os.FileInfo) error {
	w.stats.SetCurrentDepth(int32(depth))

	if w.config.MaxDepth >= 0 && depth >= w.config.MaxDepth {
		w.log.WithFields(logger.Fields{
			"path":  path,
			"depth": depth,
		}).Debug("Max depth reached")
		w.result.Errors[path] = &MaxDepthError{Path: path, MaxDepth: w.config.MaxDepth}
		return nil
	}

	w.log.WithFields(logger.Fields{
		"path":  path,
		"depth": depth,
	}).Debug("Reading directory")

	infos, err := afero.ReadDir(w.fs, path)
	if err != nil {
		w.log.WithFields(logger.Fields{
			"error": err,
			"path":  path,
		}).Error("Failed to read directory")
		w.result.Errors[path] = &ReadDirError{Path: path, Err: err}
		return nil
	}
	w.stats.AddDirectoriesScanned(1)

	if self, err := w.fs.Stat(path); err == nil {
		ancestors = append(ancestors, self)
	}

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := info.Name()
		childPath := filepath.Join(path, name)

		if pattern, ok := w.rules.Ignored(name); ok {
			w.log.WithFields(logger.Fields{
				"path":    childPath,
				"pattern": pattern.Raw,
			}).Debug("Path ignored")
			w.result.Ignored = append(w.result.Ignored, name)
			w.result.Stats.Skipped++
			continue
		}

		symlink := isSymlink(w.fs, childPath, info)
		if info.IsDir() || symlink {
			w.result.Entries = append(w.result.Entries, Entry{
				Name:     name,
				Path:     childPath,
				Kind:     KindDirectory,
				Category: extension.Folder,
				Symlink:  symlink,
			})
			if symlink && w.loops(childPath, ancestors) {
				w.log.WithFields(logger.Fields{
					"path": childPath,
				}).Warn("Symbolic link loop skipped")
				w.result.Errors[childPath] = &SymlinkLoopError{Path: childPath}
				continue
			}
			if err := w.dir(ctx, childPath, depth+1, ancestors); err != nil {
				return err
			}
			continue
		}

		idx := len(w.result.Entries)
		w.result.Entries = append(w.result.Entries, Entry{
			Name:     name,
			Path:     childPath,
			Kind:     KindFile,
			Size:     info.Size(),
			Category: extension.CategoryOf(name),
		})
		w.stats.AddFilesFound(1)

		if !info.Mode().IsRegular() {
			w.log.WithFields(logger.Fields{
				"path": childPath,
				"mode": info.Mode().String(),
			}).Debug("Special file not measured")
			w.result.Entries[idx].Metrics = &Metrics{}
			continue
		}

		task := worker.Task[Metrics]{
			ID: idx,
			Execute: func(ctx context.Context) (Metrics, error) {
				return w.measure(ctx, childPath)
			},
		}
		if err := w.pool.Submit(task); err != nil {
			return err
		}
	}

	return nil
}

// loops reports whether the link at path resolves to one of ancestors.
func (w *walk) loops(path string, ancestors []os.FileInfo) bool {
	target, err := w.fs.Stat(path)
	if err != nil || !target.IsDir() {
		return false
	}
	for _, a := range ancestors {
		if os.SameFile(a, target) {
			return true
		}
	}
	return false
}

// measure reads a file once and counts its lines and characters. Characters
// are UTF-16 code units of the UTF-8 content.
func (w *walk) measure(ctx context.Context, path string) (Metrics, error) {
	w.log.WithFields(logger.Fields{
		"path": path,
	}).Trace("Measuring file")

	file, err := w.fs.Open(path)
	if err != nil {
		w.log.WithFields(logger.Fields{
			"error": err,
			"path":  path,
		}).Error("Failed to open file")
		return Metrics{}, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	m := Metrics{Lines: 1}
	buf := make([]byte, w.config.BufferSize)
	for {
		if err := ctx.Err(); err != nil {
			return Metrics{}, err
		}

		n, err := file.Read(buf)
		for _, b := range buf[:n] {
			if b == '\n' {
				m.Lines++
			}
			m.Chars += utf16Units(b)
		}
		w.stats.AddBytesRead(int64(n))

		if errors.Is(err, io.EOF) {
			w.stats.AddFilesScanned(1)
			return m, nil
		}
		if err != nil {
			w.log.WithFields(logger.Fields{
				"error": err,
				"path":  path,
			}).Error("Error reading file")
			return Metrics{}, fmt.Errorf("error reading file %s: %w", path, err)
		}
	}
}

// utf16Units returns how many UTF-16 code units the sequence led by b takes.
// Continuation bytes count nothing and four-byte sequences, which encode
// runes above the basic plane, count two.
func utf16Units(b byte) int {
	switch {
	case b&0xC0 == 0x80:
		return 0
	case b >= 0xF0 && b <= 0xF4:
		return 2
	default:
		return 1
	}
}

// Progress returns the current walking progress
func (s *scanner) Progress() Progress {
	s.mu.RLock()
	stats, start := s.stats, s.startTime
	s.mu.RUnlock()

	return Progress{
		TotalFiles:     stats.GetFilesFound(),
		ProcessedFiles: stats.GetFilesScanned(),
		CurrentDepth:   int(stats.GetCurrentDepth()),
		StartTime:      start,
		BytesRead:      stats.GetBytesRead(),
	}
}
