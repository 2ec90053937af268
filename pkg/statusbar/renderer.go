package statusbar

import (
	"github.com/fatih/color"
	"github.com/sonemaro/insights/pkg/util"
)

const infoIcon = "ⓘ"

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type view struct {
	state state
	line  string
	title string
	frame int
}

type renderer struct {
	width   int
	style   Style
	icon    *color.Color
	spinner *color.Color
	failed  *color.Color
}

func newRenderer(width int, style Style, noColor bool) *renderer {
	r := &renderer{
		width:   width,
		style:   style,
		icon:    color.New(color.FgCyan),
		spinner: color.New(color.FgCyan),
		failed:  color.New(color.FgRed),
	}
	if noColor {
		r.icon.DisableColor()
		r.spinner.DisableColor()
		r.failed.DisableColor()
	}
	return r
}

func (r *renderer) render(v view) string {
	switch v.state {
	case stateBusy:
		title := r.fit(v.title, 2)
		if r.style == StyleSpinner {
			return r.spinner.Sprint(spinnerFrames[v.frame%len(spinnerFrames)]) + " " + title
		}
		return title
	case stateShowing:
		return r.icon.Sprint(infoIcon) + " " + r.fit(v.line, 2)
	case stateUnavailable:
		return r.failed.Sprint(infoIcon + " " + r.fit(v.line, 2))
	default:
		return ""
	}
}

// fit truncates s so that it fits next to a prefix of prefixLen cells and
// leaves the last column free.
func (r *renderer) fit(s string, prefixLen int) string {
	if r.width <= 0 {
		return s
	}
	max := r.width - prefixLen - 1
	if max < 1 {
		max = 1
	}
	return util.TruncateRight(s, max)
}
