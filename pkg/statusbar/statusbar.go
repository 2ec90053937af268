/*
Package statusbar shows the rotating summary on the last line of a terminal.

A Bar keeps one line on screen and redraws it in place. Log lines written
through the Bar are printed above it. When the writer is not a terminal
every change is printed as a plain line instead.

	bar := statusbar.New(statusbar.Config{Style: statusbar.StyleSpinner}, log)
	defer bar.Hide()

	bar.Busy("Exploring environment...")
	bar.Show("2 KB of file has been written")
	fmt.Fprintln(bar, "[Info] logo.png ignored")
*/
package statusbar

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/sonemaro/insights/pkg/logger"
	"golang.org/x/term"
)

// Bar is a single line display. It is safe for concurrent use.
type Bar struct {
	config   Config
	log      logger.Logger
	writer   io.Writer
	terminal bool
	renderer *renderer

	mu       sync.Mutex
	view     view
	drawn    string
	stopChan chan struct{}
}

// New creates a Bar.
func New(config Config, log logger.Logger) *Bar {
	if config.RefreshRate == 0 {
		config.RefreshRate = 100 * time.Millisecond
	}
	if config.Style == "" {
		config.Style = StyleSpinner
	}
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	b := &Bar{
		config: config,
		log:    log.Named("statusbar"),
		writer: config.Writer,
	}
	b.terminal = config.Terminal || b.IsSupportedTerminal()

	width := config.Width
	if width == 0 {
		width = b.getTerminalWidth()
	}
	b.renderer = newRenderer(width, config.Style, config.NoColor)

	b.log.WithFields(logger.Fields{
		"style":    config.Style,
		"width":    width,
		"terminal": b.terminal,
		"noColor":  config.NoColor,
	}).Debug("Created status bar")

	return b
}

// Show displays a summary line.
func (b *Bar) Show(line string) {
	b.set(view{state: stateShowing, line: line})
}

// Unavailable displays line in red.
func (b *Bar) Unavailable(line string) {
	b.set(view{state: stateUnavailable, line: line})
}

// Busy replaces the summary with title while a scan runs.
func (b *Bar) Busy(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.view = view{state: stateBusy, title: title}
	b.render()

	if b.terminal && b.config.Style == StyleSpinner && b.stopChan == nil {
		b.stopChan = make(chan struct{})
		go b.spin(b.stopChan)
	}
}

// Hide clears the line.
func (b *Bar) Hide() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopSpinner()
	b.view = view{state: stateHidden}
	if b.terminal {
		b.clearLine()
	}
	b.drawn = ""
}

// Write prints p above the status line and redraws the line.
func (b *Bar) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.terminal {
		b.clearLine()
	}
	n, err := b.writer.Write(p)
	if b.terminal && b.view.state != stateHidden {
		fmt.Fprint(b.writer, b.renderer.render(b.view))
	}
	return n, err
}

// IsSupportedTerminal checks if the writer is an interactive terminal
func (b *Bar) IsSupportedTerminal() bool {
	if f, ok := b.writer.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func (b *Bar) set(v view) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopSpinner()
	b.view = v
	b.render()

	b.log.WithFields(logger.Fields{
		"state": v.state,
		"line":  v.line,
	}).Trace("Status line changed")
}

// render draws the current view. Callers hold mu.
func (b *Bar) render() {
	out := b.renderer.render(b.view)
	if b.terminal {
		b.clearLine()
		fmt.Fprint(b.writer, out)
		b.drawn = out
		return
	}
	if out != "" && out != b.drawn {
		fmt.Fprintln(b.writer, out)
	}
	b.drawn = out
}

func (b *Bar) spin(stop <-chan struct{}) {
	ticker := time.NewTicker(b.config.RefreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			b.mu.Lock()
			select {
			case <-stop:
				b.mu.Unlock()
				return
			default:
			}
			b.view.frame++
			b.render()
			b.mu.Unlock()
		}
	}
}

// stopSpinner ends the spinner goroutine. Callers hold mu.
func (b *Bar) stopSpinner() {
	if b.stopChan != nil {
		close(b.stopChan)
		b.stopChan = nil
	}
}

func (b *Bar) clearLine() {
	fmt.Fprint(b.writer, "\r\033[K")
}

func (b *Bar) getTerminalWidth() int {
	if f, ok := b.writer.(*os.File); ok && b.IsSupportedTerminal() {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil {
			return w
		}
	}
	return 80
}
