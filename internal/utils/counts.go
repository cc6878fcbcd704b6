package utils

import "maps"

// CopyCounts returns an independent copy of a counter map, never nil
func CopyCounts(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return maps.Clone(m)
}

// AddCounts returns base plus delta. It reports the first key that would go
// negative and leaves base untouched in that case.
func AddCounts(base, delta map[string]int) (map[string]int, string, bool) {
	out := CopyCounts(base)
	for k, d := range delta {
		if d == 0 {
			continue
		}
		next := out[k] + d
		if next < 0 {
			return base, k, false
		}
		out[k] = next
	}
	return out, "", true
}

// NegateCounts flips the sign of every count
func NegateCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = -v
	}
	return out
}

// PositiveCounts drops non-positive entries
func PositiveCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		if v > 0 {
			out[k] = v
		}
	}
	return out
}
