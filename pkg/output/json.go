package output

import (
	"encoding/json"
	"time"

	"github.com/sonemaro/insights/pkg/logger"
	"github.com/sonemaro/insights/pkg/stats"
)

// document is the structure shared by the JSON and YAML outputs
type document struct {
	Root       string             `json:"root" yaml:"root"`
	Totals     stats.ProjectStats `json:"totals" yaml:"totals"`
	MostUsed   string             `json:"mostUsed,omitempty" yaml:"mostUsed,omitempty"`
	Categories []category         `json:"categories" yaml:"categories"`
	Ignored    []string           `json:"ignored,omitempty" yaml:"ignored,omitempty"`
	Errors     int                `json:"errors" yaml:"errors"`
	DurationMS int64              `json:"durationMs" yaml:"durationMs"`
	Generated  time.Time          `json:"generated" yaml:"generated"`
}

type category struct {
	stats.Bucket `yaml:",inline"`
	Largest      string `json:"largest" yaml:"largest"`
	LargestSize  int64  `json:"largestSize" yaml:"largestSize"`
}

func (f *formatter) document(report Report) *document {
	doc := &document{
		Root:       report.Root,
		Totals:     report.Stats,
		Categories: []category{},
		Ignored:    report.Ignored,
		Errors:     report.Errors,
		DurationMS: report.Duration.Milliseconds(),
		Generated:  report.Generated,
	}
	if doc.Generated.IsZero() {
		doc.Generated = time.Now()
	}
	if top, ok := report.Stats.MostUsed(); ok {
		doc.MostUsed = top.Category
	}

	for _, name := range report.Stats.Categories() {
		b := report.Stats.Bucket(name)
		f.log.WithFields(logger.Fields{
			"category": name,
		}).Trace("Adding category")
		doc.Categories = append(doc.Categories, category{
			Bucket:      *b,
			Largest:     b.Largest.Name,
			LargestSize: b.Largest.Size,
		})
	}
	return doc
}

func (f *formatter) formatJSON(report Report) (string, error) {
	f.log.Debug("Formatting JSON output")

	bytes, err := json.MarshalIndent(f.document(report), "", "  ")
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}
