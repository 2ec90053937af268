package scanner

import (
	"os"

	"github.com/spf13/afero"
)

// NewScannerStats creates a zeroed ScannerStats instance
func NewScannerStats() *ScannerStats {
	return &ScannerStats{}
}

func (s *ScannerStats) AddFilesFound(delta int64) int64 {
	return s.filesFound.Add(delta)
}

func (s *ScannerStats) AddFilesScanned(delta int64) int64 {
	return s.filesScanned.Add(delta)
}

func (s *ScannerStats) AddDirectoriesScanned(delta int64) int64 {
	return s.directoriesScanned.Add(delta)
}

func (s *ScannerStats) AddBytesRead(delta int64) int64 {
	return s.bytesRead.Add(delta)
}

func (s *ScannerStats) SetCurrentDepth(depth int32) int32 {
	return s.currentDepth.Swap(depth)
}

func (s *ScannerStats) GetFilesFound() int64 {
	return s.filesFound.Load()
}

func (s *ScannerStats) GetFilesScanned() int64 {
	return s.filesScanned.Load()
}

func (s *ScannerStats) GetDirectoriesScanned() int64 {
	return s.directoriesScanned.Load()
}

func (s *ScannerStats) GetBytesRead() int64 {
	return s.bytesRead.Load()
}

func (s *ScannerStats) GetCurrentDepth() int32 {
	return s.currentDepth.Load()
}

// isSymlink reports whether the listed node is a symbolic link. Listings of
// the OS filesystem already carry lstat modes; other filesystems are asked
// through afero.Lstater when they support it.
func isSymlink(fs afero.Fs, path string, info os.FileInfo) bool {
	if info.Mode()&os.ModeSymlink != 0 {
		return true
	}
	lst, ok := fs.(afero.Lstater)
	if !ok {
		return false
	}
	linfo, lstatCalled, err := lst.LstatIfPossible(path)
	if err != nil || !lstatCalled {
		return false
	}
	return linfo.Mode()&os.ModeSymlink != 0
}
