package stats

import (
	"context"
	"strings"
	"testing"

	"github.com/sonemaro/insights/pkg/ignore"
	"github.com/sonemaro/insights/pkg/logger"
	"github.com/sonemaro/insights/pkg/scanner"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string)                               {}
func (m *mockLogger) Debug(msg string)                              {}
func (m *mockLogger) Error(msg string)                              {}
func (m *mockLogger) Warn(msg string)                               {}
func (m *mockLogger) Trace(msg string)                              {}
func (m *mockLogger) WithFields(fields logger.Fields) logger.Logger { return m }
func (m *mockLogger) Named(component string) logger.Logger          { return m }

func file(name string, size int64, lines, chars int) scanner.Entry {
	return scanner.Entry{
		Name:     name,
		Path:     "/p/" + name,
		Kind:     scanner.KindFile,
		Size:     size,
		Metrics:  &scanner.Metrics{Lines: lines, Chars: chars},
		Category: "",
	}
}

func dir(name string) scanner.Entry {
	return scanner.Entry{Name: name, Path: "/p/" + name, Kind: scanner.KindDirectory, Category: "folder"}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name    string
		entries []scanner.Entry
		verify  func(*testing.T, ProjectStats)
	}{
		{
			name: "empty",
			verify: func(t *testing.T, ps ProjectStats) {
				assert.Zero(t, ps.TotalFiles)
				assert.Zero(t, ps.TotalCategories)
				assert.Empty(t, ps.Categories())
				_, ok := ps.MostUsed()
				assert.False(t, ok)
			},
		},
		{
			name: "totals and buckets",
			entries: []scanner.Entry{
				dir("src"),
				file("a.go", 100, 10, 90),
				file("b.go", 300, 20, 280),
				file("c.js", 50, 5, 45),
				dir("docs"),
				file("Makefile", 20, 2, 18),
			},
			verify: func(t *testing.T, ps ProjectStats) {
				assert.Equal(t, 4, ps.TotalFiles)
				assert.Equal(t, 2, ps.Folders)
				assert.Equal(t, int64(470), ps.TotalSize)
				assert.Equal(t, 37, ps.TotalLines)
				assert.Equal(t, 433, ps.TotalChars)
				assert.Equal(t, 3, ps.TotalCategories)
				assert.Equal(t, []string{"GO", "JS", "ignore"}, ps.Categories())

				goBucket := ps.Bucket("GO")
				require.NotNil(t, goBucket)
				assert.Equal(t, 2, goBucket.Files)
				assert.Equal(t, int64(400), goBucket.Size)
				assert.Equal(t, 30, goBucket.Lines)
				assert.Equal(t, 370, goBucket.Chars)
				assert.Equal(t, "b.go", goBucket.Largest.Name)
			},
		},
		{
			name: "largest keeps first on equal size",
			entries: []scanner.Entry{
				file("first.ts", 10, 1, 10),
				file("second.ts", 10, 1, 10),
			},
			verify: func(t *testing.T, ps ProjectStats) {
				assert.Equal(t, "first.ts", ps.Bucket("TS").Largest.Name)
			},
		},
		{
			name: "most used is the category with the largest file",
			entries: []scanner.Entry{
				file("a.js", 10, 1, 10),
				file("b.js", 10, 1, 10),
				file("c.js", 10, 1, 10),
				file("big.py", 25, 1, 25),
			},
			verify: func(t *testing.T, ps ProjectStats) {
				top, ok := ps.MostUsed()
				require.True(t, ok)
				assert.Equal(t, "PY", top.Category)
			},
		},
		{
			name: "most used ties resolve to first seen",
			entries: []scanner.Entry{
				file("x.rs", 40, 1, 40),
				file("y.c", 40, 1, 40),
			},
			verify: func(t *testing.T, ps ProjectStats) {
				top, ok := ps.MostUsed()
				require.True(t, ok)
				assert.Equal(t, "RS", top.Category)
			},
		},
		{
			name: "file without metrics counts as a file",
			entries: []scanner.Entry{
				{Name: "fifo", Kind: scanner.KindFile, Category: "ignore"},
			},
			verify: func(t *testing.T, ps ProjectStats) {
				assert.Equal(t, 1, ps.TotalFiles)
				assert.Zero(t, ps.TotalLines)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, Reduce(tt.entries))
		})
	}
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	entries := []scanner.Entry{file("a.go", 1, 1, 1), dir("d")}
	before := append([]scanner.Entry(nil), entries...)

	Reduce(entries)
	assert.Equal(t, before, entries)
}

func TestCategoriesReturnsCopy(t *testing.T) {
	ps := Reduce([]scanner.Entry{file("a.go", 1, 1, 1)})
	cats := ps.Categories()
	cats[0] = "changed"
	assert.Equal(t, []string{"GO"}, ps.Categories())
}

func TestReduceWalkedTree(t *testing.T) {
	// 9 newlines, 21 ASCII letters and 90 three-byte runes
	line := strings.Repeat("€", 10)
	content := strings.Repeat(line+"\n", 9) + "abcdefghijklmnopqrstu"
	require.Len(t, content, 300)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/app.js", []byte(content), 0644))
	require.NoError(t, afero.WriteFile(fs, "/proj/logo.png", []byte("png"), 0644))

	rules, err := ignore.Load(fs, "/proj")
	require.NoError(t, err)

	sc := scanner.NewScanner(scanner.Config{Workers: 2, MaxDepth: -1}, fs, &mockLogger{})
	result, err := sc.Walk(context.Background(), "/proj", rules)
	require.NoError(t, err)

	ps := Reduce(result.Entries)
	assert.Equal(t, 1, ps.TotalFiles)
	assert.Equal(t, 1, ps.TotalCategories)
	assert.Equal(t, 10, ps.TotalLines)
	assert.Equal(t, 120, ps.TotalChars)
	assert.Equal(t, int64(300), ps.TotalSize)

	top, ok := ps.MostUsed()
	require.True(t, ok)
	assert.Equal(t, "JS", top.Category)
	assert.Equal(t, "app.js", top.Largest.Name)
}
