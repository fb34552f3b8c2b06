package analysis

import "github.com/RyanNg1403/cipher-benchmark-results/results"

// PassAtK returns the unbiased pass@k estimate for a question with n
// samples, c of them correct: 1 - C(n-c, k)/C(n, k), computed without
// explicit binomials to avoid overflow.
func PassAtK(n, c, k int) float64 {
	if n <= 0 || k <= 0 {
		return 0
	}

	if n-c < k {
		return 1
	}

	estimate := 1.0
	for i := n - c + 1; i <= n; i++ {
		estimate *= 1 - float64(k)/float64(i)
	}

	return 1 - estimate
}

// MeanPassAtK averages PassAtK over all records carrying a graded
// list. Records without one are ignored; with none present it
// returns 0 and false.
func MeanPassAtK(records []results.Record, k int) (float64, bool) {
	var sum float64

	counted := 0

	for _, r := range records {
		n := len(r.GradedList)
		if n == 0 {
			continue
		}

		c := 0

		for _, ok := range r.GradedList {
			if ok {
				c++
			}
		}

		sum += PassAtK(n, c, k)
		counted++
	}

	if counted == 0 {
		return 0, false
	}

	return sum / float64(counted), true
}
