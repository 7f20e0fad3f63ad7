package track

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat renders v as the shortest decimal that round-trips, keeping a
// trailing ".0" on integral values (81 -> "81.0").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
