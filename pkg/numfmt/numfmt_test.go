package numfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToHuman(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Byte"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "2 KB"},
		{1535, "1 KB"},
		{300, "300 Bytes"},
		{1024 * 1024, "1 MB"},
		{5*1024*1024*1024 + 1, "5 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3 TB"},
		{2048 * 1024 * 1024 * 1024 * 1024, "2048 TB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, BytesToHuman(tt.in))
		})
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1k"},
		{1234, "1.2k"},
		{1250, "1.3k"},
		{9999, "10k"},
		{12345, "12k"},
		{100000, "0.1m"},
		{123456, "0.1m"},
		{150000, "0.1m"},
		{500000, "0.5m"},
		{950000, "0.9m"},
		{999999, "1m"},
		{1500000, "1.5m"},
		{25000000, "25m"},
		{99999999, "100m"},
		{123456789, "0.1b"},
		{999500000, "1b"},
		{3000000000, "3b"},
		{4200000000000, "4.2t"},
		{123456789012, "0.1t"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Abbreviate(tt.in))
		})
	}
}

func TestAbbreviateKeepsTwoSignificantDigits(t *testing.T) {
	for n := int64(1000); n < 1000000; n += 997 {
		got := Abbreviate(n)
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, got)
		digits = strings.TrimLeft(digits, "0")
		assert.LessOrEqual(t, len(strings.TrimRight(digits, "0")), 2, "%d -> %s", n, got)
	}
}
