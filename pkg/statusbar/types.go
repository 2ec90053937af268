package statusbar

import (
	"io"
	"time"
)

// Style selects how a running scan is shown.
type Style string

const (
	// StyleSpinner animates a spinner next to the busy title
	StyleSpinner Style = "spinner"

	// StyleSimple prints the busy title once
	StyleSimple Style = "simple"
)

// Config holds the configuration of a status bar
type Config struct {
	// Style defines how a running scan is displayed
	Style Style

	// Width is the maximum line width (0 = auto-detect)
	Width int

	// NoColor disables colored output
	NoColor bool

	// RefreshRate defines how often the spinner moves
	RefreshRate time.Duration

	// Writer receives the output, os.Stdout when nil
	Writer io.Writer

	// Terminal forces line redrawing on writers that are not a terminal
	Terminal bool
}

type state int

const (
	stateHidden state = iota
	stateBusy
	stateShowing
	stateUnavailable
)

func (s state) String() string {
	switch s {
	case stateBusy:
		return "busy"
	case stateShowing:
		return "showing"
	case stateUnavailable:
		return "unavailable"
	default:
		return "hidden"
	}
}
