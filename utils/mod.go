package utils

// Wrap maps any index onto [0, n), wrapping negative values from the end.
func Wrap(i, n int) int {
	return ((i % n) + n) % n
}

// Histogram counts how often each value in [0, k) appears in values.
// Values outside that range are ignored.
func Histogram(values []int, k int) []int {
	counts := make([]int, k)
	for _, v := range values {
		if v >= 0 && v < k {
			counts[v]++
		}
	}
	return counts
}
