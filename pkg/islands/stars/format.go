package stars

import (
	"math"
	"strconv"
)

// FormatCount renders a star count: nil is "0", counts below 1000 are printed
// as is, larger counts in thousands with one decimal and a "k" suffix.
func FormatCount(count *int) string {
	if count == nil {
		return "0"
	}
	n := *count
	if n < 1000 {
		return strconv.Itoa(n)
	}
	// round half up, 1250 -> 1.3k
	thousands := math.Floor(float64(n)/100+0.5) / 10
	return strconv.FormatFloat(thousands, 'f', 1, 64) + "k"
}
