package coverflow

import "math"

// DefaultWheelStep moves the slider by 5% per wheel notch.
const DefaultWheelStep = 0.05

// IndexForValue maps a slider value in [0,1] to a slide index in [0,n-1].
func IndexForValue(v float64, n int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(v * float64(n-1)))
}

// ValueForIndex is the slider value that selects index i exactly.
func ValueForIndex(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

func clampValue(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
