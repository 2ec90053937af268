package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sonemaro/insights/pkg/cycle"
	"github.com/sonemaro/insights/pkg/util"
)

// largestWidth caps the LARGEST column. Long names keep their extension.
const largestWidth = 32

// formatText renders a category table followed by the summary lines
func (f *formatter) formatText(report Report) (string, error) {
	f.log.Debug("Formatting text output")

	header := color.New(color.Bold)
	name := color.New(color.FgBlue, color.Bold)
	if !f.config.WithColors {
		header.DisableColor()
		name.DisableColor()
	}

	ps := report.Stats
	var builder strings.Builder

	builder.WriteString(header.Sprint(report.Root) + "\n\n")

	if len(ps.Categories()) > 0 {
		builder.WriteString(header.Sprintf("%-12s %8s %10s %12s %10s  %s\n",
			"CATEGORY", "FILES", "LINES", "CHARS", "SIZE", "LARGEST"))
		for _, category := range ps.Categories() {
			b := ps.Bucket(category)
			// pad before coloring so escape codes do not break alignment
			builder.WriteString(name.Sprint(fmt.Sprintf("%-12s", category)))
			builder.WriteString(fmt.Sprintf(" %8s %10s %12s %10s  %s\n",
				util.FormatCount(b.Files),
				util.FormatCount(b.Lines),
				util.FormatCount(b.Chars),
				util.FormatSize(b.Size),
				util.TruncateLeft(b.Largest.Name, largestWidth)))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(header.Sprint("Statistics:") + "\n")
	builder.WriteString(fmt.Sprintf("  Total Files: %s\n", util.FormatCount(ps.TotalFiles)))
	builder.WriteString(fmt.Sprintf("  Total Folders: %s\n", util.FormatCount(ps.Folders)))
	builder.WriteString(fmt.Sprintf("  Total Lines: %s\n", util.FormatCount(ps.TotalLines)))
	builder.WriteString(fmt.Sprintf("  Total Characters: %s\n", util.FormatCount(ps.TotalChars)))
	builder.WriteString(fmt.Sprintf("  Total Size: %s\n", util.FormatSize(ps.TotalSize)))
	builder.WriteString(fmt.Sprintf("  Categories: %d\n", ps.TotalCategories))
	builder.WriteString(fmt.Sprintf("  Ignored: %d\n", len(report.Ignored)))
	if report.Errors > 0 {
		builder.WriteString(fmt.Sprintf("  Errors: %d\n", report.Errors))
	}

	builder.WriteString("\n" + header.Sprint("Summary:") + "\n")
	summary := cycle.NewSummary(ps)
	for step := 0; step < cycle.Steps; step++ {
		builder.WriteString("  " + summary.Line(step) + "\n")
	}

	return builder.String(), nil
}
