package cycle

import (
	"fmt"
	"strings"

	"github.com/sonemaro/insights/pkg/numfmt"
	"github.com/sonemaro/insights/pkg/stats"
)

// Steps is the number of summary lines in one rotation.
const Steps = 6

const (
	// IdleLine is shown between the end of a rotation and the next scan.
	IdleLine = "Insights Idle"

	// UnavailableLine is shown when there is no directory to explore.
	UnavailableLine = "Insights Unavailable"

	noFilesLine = "No files explored"
)

// Summary is the part of ProjectStats the rotation talks about.
type Summary struct {
	TotalSize  int64
	TotalLines int
	TotalChars int

	// Categories in first-seen order.
	Categories []string

	// MostUsed and Largest are empty when no file was explored.
	MostUsed string
	Largest  string
}

// NewSummary extracts a Summary from ps.
func NewSummary(ps stats.ProjectStats) Summary {
	s := Summary{
		TotalSize:  ps.TotalSize,
		TotalLines: ps.TotalLines,
		TotalChars: ps.TotalChars,
		Categories: ps.Categories(),
	}
	if top, ok := ps.MostUsed(); ok {
		s.MostUsed = top.Category
		s.Largest = top.Largest.Name
	}
	return s
}

// Line renders the summary line of step. Steps outside 0..5 give the idle
// line.
func (s Summary) Line(step int) string {
	switch step {
	case 0:
		return fmt.Sprintf("%s of file has been written", numfmt.BytesToHuman(s.TotalSize))
	case 1:
		return fmt.Sprintf("%s line of code written", numfmt.Abbreviate(int64(s.TotalLines)))
	case 2:
		return fmt.Sprintf("%s character written", numfmt.Abbreviate(int64(s.TotalChars)))
	case 3:
		switch len(s.Categories) {
		case 1, 2:
			return "You only used " + strings.Join(s.Categories, " and ")
		default:
			return fmt.Sprintf("%d different languages used", len(s.Categories))
		}
	case 4:
		if s.MostUsed == "" {
			return noFilesLine
		}
		return s.MostUsed + " is the most used language"
	case 5:
		if s.MostUsed == "" {
			return noFilesLine
		}
		return fmt.Sprintf("Largest file in %s is %s", s.MostUsed, s.Largest)
	default:
		return IdleLine
	}
}
