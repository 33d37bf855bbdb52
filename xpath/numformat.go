package xpath

import (
	"math"
	"strconv"
)

// formatNumber renders a float64 the way XPath 1.0's number-to-string
// conversion requires (spec.md §9's Open Question, resolved here):
// no exponential notation regardless of magnitude, the minimal number
// of digits that round-trips, no trailing fractional zeros, and the
// three special string forms for non-finite values. Negative zero is
// normalized to "0" since XPath has no concept of signed zero.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
