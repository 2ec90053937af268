package insights

import (
	"fmt"
	"io"
	"sync"
)

// Display shows the rotating summary line.
type Display interface {
	// Show replaces the current line.
	Show(line string)

	// Unavailable shows line in the error state.
	Unavailable(line string)

	// Busy hides the summary while a scan runs and shows title instead.
	Busy(title string)

	// Hide removes the display.
	Hide()
}

// Notifier raises popups that need the user's attention.
type Notifier interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Channel writes the "[Info] ..." and "[ERR ] ..." log lines of the output
// channel. It is safe for concurrent use.
type Channel struct {
	mu sync.Mutex
	w  io.Writer
}

// NewChannel returns a Channel writing to w. A nil w discards everything.
func NewChannel(w io.Writer) *Channel {
	if w == nil {
		w = io.Discard
	}
	return &Channel{w: w}
}

// Info appends an info line.
func (c *Channel) Info(format string, args ...any) {
	c.append("[Info] ", format, args...)
}

// Error appends an error line.
func (c *Channel) Error(format string, args ...any) {
	c.append("[ERR ] ", format, args...)
}

func (c *Channel) append(prefix, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, prefix+format+"\n", args...)
}

type nopDisplay struct{}

func (nopDisplay) Show(string)        {}
func (nopDisplay) Unavailable(string) {}
func (nopDisplay) Busy(string)        {}
func (nopDisplay) Hide()              {}

type nopNotifier struct{}

func (nopNotifier) Info(string)  {}
func (nopNotifier) Warn(string)  {}
func (nopNotifier) Error(string) {}
