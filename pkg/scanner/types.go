package scanner

import (
	"sync/atomic"
	"time"
)

// Kind is the type of a scanned filesystem node.
type Kind int

const (
	// KindFile is a regular or special file.
	KindFile Kind = iota
	// KindDirectory is a directory or a symbolic link.
	KindDirectory
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Metrics holds the content measurements of a file.
type Metrics struct {
	// Lines is the number of newline separated lines, an empty file has one.
	Lines int

	// Chars is the number of UTF-16 code units the text takes.
	Chars int
}

// Entry is one scanned node. Entries are created by a walk and never
// modified afterwards.
type Entry struct {
	Name string
	Path string
	Kind Kind

	// Size is the byte size reported by the filesystem, zero for directories.
	Size int64

	// Metrics is nil for directories.
	Metrics *Metrics

	// Category is "folder" for directories, "ignore" for extensionless
	// files and the upper-cased extension otherwise.
	Category string

	// Symlink is set for symbolic links, which are walked like directories.
	Symlink bool
}

// IsDir reports whether the entry is directory-like.
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Result contains the complete output of one walk.
type Result struct {
	// Entries lists every node found, a directory always before its
	// descendants.
	Entries []Entry

	// Ignored holds the names of nodes excluded by a rule, in walk order.
	Ignored []string

	// Errors maps a path to the problem met there. None of them stop a walk.
	Errors map[string]error

	Stats ScanStats
}

// ScanStats contains statistics about the walk itself.
type ScanStats struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalFiles int64
	TotalDirs  int64
	BytesRead  int64
	ErrorCount int
	Skipped    int64
}

// Config contains scanner configuration options
type Config struct {
	// Workers is the number of goroutines measuring file contents.
	Workers int

	// MaxDepth stops the descent at this depth, -1 for unlimited.
	MaxDepth int

	// RateLimit caps file reads per second, 0 for unlimited.
	RateLimit int

	// BufferSize is the read buffer used when measuring a file.
	BufferSize int
}

// Progress represents the current progress of a walk
type Progress struct {
	TotalFiles     int64
	ProcessedFiles int64
	CurrentDepth   int
	StartTime      time.Time
	BytesRead      int64
}

// ScannerStats holds the atomic counters behind Progress
type ScannerStats struct {
	filesFound         atomic.Int64
	filesScanned       atomic.Int64
	directoriesScanned atomic.Int64
	bytesRead          atomic.Int64
	currentDepth       atomic.Int32
}
