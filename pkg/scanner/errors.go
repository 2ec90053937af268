package scanner

import "fmt"

// ReadDirError records a directory whose listing failed. The directory is
// treated as empty.
type ReadDirError struct {
	Path string
	Err  error
}

func (e *ReadDirError) Error() string {
	return fmt.Sprintf("failed to read directory %s: %v", e.Path, e.Err)
}

func (e *ReadDirError) Unwrap() error {
	return e.Err
}

// MaxDepthError represents an error when maximum depth is reached
type MaxDepthError struct {
	Path     string
	MaxDepth int
}

func (e *MaxDepthError) Error() string {
	return fmt.Sprintf("max depth %d reached at: %s", e.MaxDepth, e.Path)
}

// SymlinkLoopError records a symbolic link that points back at one of its
// own ancestors. The link is listed but not descended into.
type SymlinkLoopError struct {
	Path string
}

func (e *SymlinkLoopError) Error() string {
	return fmt.Sprintf("symbolic link loop at: %s", e.Path)
}
