package sim

import "math"

// TruncateToInt converts x to an int by discarding the fractional part,
// rounding toward zero: 61.75 -> 61, -0.5 -> 0.
// Printed recent_cpu values and float priorities both go through here; the
// distinction from rounding is visible in the output.
func TruncateToInt(x float64) int {
	return int(math.Trunc(x))
}

// FloatPriority computes PriMax - recentCPU/4 - nice*2 in real arithmetic and
// truncates the result. No clamping is applied.
func FloatPriority(recentCPU float64, nice int) int {
	return TruncateToInt(float64(PriMax) - recentCPU/4 - float64(nice*2))
}

// ClampPriority bounds p to [PriMin, PriMax].
func ClampPriority(p int) int {
	if p < PriMin {
		return PriMin
	}
	if p > PriMax {
		return PriMax
	}
	return p
}

// SelectHighest returns the index of the highest priority.
// Ties go to the lowest index. Returns -1 for an empty slice.
func SelectHighest(priorities []int) int {
	best := -1
	for i, p := range priorities {
		if best == -1 || p > priorities[best] {
			best = i
		}
	}
	return best
}
