package components

import "math"

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline maps values onto block characters, keeping at most width
// points.
func Sparkline(values []float64, width int) string {
	if width > 0 && len(values) > width {
		values = values[:width]
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	out := make([]rune, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = ' '
		case hi == lo:
			out[i] = sparks[len(sparks)/2]
		default:
			idx := int((v - lo) / (hi - lo) * float64(len(sparks)-1))
			out[i] = sparks[idx]
		}
	}
	return string(out)
}
