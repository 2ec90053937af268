// Package numfmt renders sizes and counts for the summary line.
package numfmt

import (
	"math"
	"strconv"
	"strings"
)

var (
	byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}
	suffixes  = []string{"", "k", "m", "b", "t"}
)

// BytesToHuman formats a byte count with binary multiples, rounded to a
// whole number of the largest unit that fits. Zero is "0 Byte".
func BytesToHuman(bytes int64) string {
	if bytes <= 0 {
		return "0 Byte"
	}

	i := 0
	div := int64(1)
	for i < len(byteUnits)-1 && bytes/div >= 1024 {
		div *= 1024
		i++
	}

	v := math.Round(float64(bytes) / float64(div))
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + byteUnits[i]
}

// Abbreviate shortens counts of 1000 and above to at most two significant
// digits with a k, m, b or t suffix. The suffix steps every three digits of
// the count, so 1234 is "1.2k" and 123456 is "0.1m". Smaller values are
// returned unchanged.
func Abbreviate(n int64) string {
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}

	i := len(strconv.FormatInt(n, 10)) / 3
	if i > len(suffixes)-1 {
		i = len(suffixes) - 1
	}

	short := shorten(float64(n) / math.Pow(1000, float64(i)))
	if short != math.Trunc(short) {
		return strconv.FormatFloat(short, 'f', 1, 64) + suffixes[i]
	}
	return strconv.FormatFloat(short, 'f', -1, 64) + suffixes[i]
}

// shorten rounds v to two significant digits, then to one when two still
// print more than two digits.
func shorten(v float64) float64 {
	var r float64
	for precision := 2; precision >= 1; precision-- {
		r = roundSignificant(v, precision)
		digits := strings.NewReplacer(".", "", "-", "").Replace(strconv.FormatFloat(r, 'f', -1, 64))
		if len(digits) <= 2 {
			break
		}
	}
	return r
}

// roundSignificant rounds the exact binary value of v to precision
// significant digits. Exact halves round up, so 1.25 gives 1.3 while 0.15,
// stored just below the half, gives 0.1.
func roundSignificant(v float64, precision int) float64 {
	if v == 0 {
		return 0
	}

	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', 20, 64), "e")
	digits := strings.Replace(mantissa, ".", "", 1)
	e, _ := strconv.Atoi(exp)

	head, _ := strconv.ParseInt(digits[:precision], 10, 64)
	if digits[precision] >= '5' {
		head++
	}
	r, _ := strconv.ParseFloat(strconv.FormatInt(head, 10)+"e"+strconv.Itoa(e-precision+1), 64)
	return r
}
