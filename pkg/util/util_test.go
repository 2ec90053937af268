package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0 B", FormatSize(0))
	assert.Equal(t, "0 B", FormatSize(-5))
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.5 KiB", FormatSize(1536))
	assert.Equal(t, "1.0 MiB", FormatSize(1024*1024))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "1,234,567", FormatCount(1234567))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		max   int
		left  string
		right string
	}{
		{"fits", "short", 10, "short", "short"},
		{"exact", "exact", 5, "exact", "exact"},
		{"long", "a/very/long/path.go", 10, "...path.go", "a/very/..."},
		{"tiny", "abcdef", 2, "ef", "ab"},
		{"runes", "ééééé", 4, "...é", "é..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.left, TruncateLeft(tt.in, tt.max))
			assert.Equal(t, tt.right, TruncateRight(tt.in, tt.max))
		})
	}
}
