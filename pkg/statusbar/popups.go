package statusbar

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Popups prints notifications that need the user's attention, colored by
// severity.
type Popups struct {
	w    io.Writer
	info *color.Color
	warn *color.Color
	fail *color.Color
}

// NewPopups returns Popups writing to w. Pass a Bar to keep the status line
// below the messages.
func NewPopups(w io.Writer, noColor bool) *Popups {
	p := &Popups{
		w:    w,
		info: color.New(color.FgCyan),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed, color.Bold),
	}
	if noColor {
		p.info.DisableColor()
		p.warn.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

func (p *Popups) Info(msg string) {
	fmt.Fprintln(p.w, p.info.Sprint("info:")+" "+msg)
}

func (p *Popups) Warn(msg string) {
	fmt.Fprintln(p.w, p.warn.Sprint("warning:")+" "+msg)
}

func (p *Popups) Error(msg string) {
	fmt.Fprintln(p.w, p.fail.Sprint("error:")+" "+msg)
}
