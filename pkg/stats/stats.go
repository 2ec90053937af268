/*
Package stats reduces the entries of a walk into per-category and whole
project totals.

Categories are the upper-cased file extensions produced by the extension
package. Every file entry lands in exactly one bucket, directories are only
counted.

	result, _ := sc.Walk(ctx, root, rules)
	ps := stats.Reduce(result.Entries)
	if top, ok := ps.MostUsed(); ok {
		fmt.Println(top.Category, top.Largest.Name)
	}
*/
package stats

import (
	"github.com/sonemaro/insights/pkg/extension"
	"github.com/sonemaro/insights/pkg/scanner"
)

// Bucket aggregates the files of one extension category.
type Bucket struct {
	Category string `json:"category" yaml:"category"`
	Files    int    `json:"files" yaml:"files"`
	Lines    int    `json:"lines" yaml:"lines"`
	Chars    int    `json:"chars" yaml:"chars"`
	Size     int64  `json:"size" yaml:"size"`

	// Largest is the biggest file seen for the category. On equal sizes the
	// first one is kept.
	Largest scanner.Entry `json:"-" yaml:"-"`
}

// ProjectStats holds the totals of one walk. It is rebuilt for every scan.
type ProjectStats struct {
	TotalSize       int64 `json:"totalSize" yaml:"totalSize"`
	TotalLines      int   `json:"totalLines" yaml:"totalLines"`
	TotalChars      int   `json:"totalChars" yaml:"totalChars"`
	TotalFiles      int   `json:"totalFiles" yaml:"totalFiles"`
	TotalCategories int   `json:"totalCategories" yaml:"totalCategories"`
	Folders         int   `json:"folders" yaml:"folders"`

	Buckets map[string]*Bucket `json:"-" yaml:"-"`

	// first-seen category order
	order []string
}

// Reduce folds entries into ProjectStats in a single pass. The input is not
// modified.
func Reduce(entries []scanner.Entry) ProjectStats {
	ps := ProjectStats{Buckets: make(map[string]*Bucket)}

	for _, e := range entries {
		if e.IsDir() {
			ps.Folders++
			continue
		}

		category := e.Category
		if category == "" {
			category = extension.CategoryOf(e.Name)
		}

		b, ok := ps.Buckets[category]
		if !ok {
			b = &Bucket{Category: category, Largest: e}
			ps.Buckets[category] = b
			ps.order = append(ps.order, category)
		} else if e.Size > b.Largest.Size {
			b.Largest = e
		}

		var lines, chars int
		if e.Metrics != nil {
			lines, chars = e.Metrics.Lines, e.Metrics.Chars
		}

		b.Files++
		b.Lines += lines
		b.Chars += chars
		b.Size += e.Size

		ps.TotalFiles++
		ps.TotalLines += lines
		ps.TotalChars += chars
		ps.TotalSize += e.Size
	}

	ps.TotalCategories = len(ps.Buckets)
	return ps
}

// Categories returns the categories in the order they were first seen.
func (ps ProjectStats) Categories() []string {
	return append([]string(nil), ps.order...)
}

// Bucket returns the bucket of category, or nil.
func (ps ProjectStats) Bucket(category string) *Bucket {
	return ps.Buckets[category]
}

// MostUsed returns the category holding the largest single file. It reports
// false when no file was seen.
func (ps ProjectStats) MostUsed() (*Bucket, bool) {
	var top *Bucket
	for _, category := range ps.order {
		b := ps.Buckets[category]
		if top == nil || b.Largest.Size > top.Largest.Size {
			top = b
		}
	}
	return top, top != nil
}
