// Package wordselect implements the length-bucketed word sampling
// heuristic that feeds the encoder -- spec section 4.2. Shorter words are
// overrepresented because they cross more densely.
package wordselect

import "math/rand"

// TargetCount returns M, the word budget for a grid of the given size,
// per spec section 4.2's table.
func TargetCount(size int) int {
	switch {
	case size <= 8:
		return 80
	case size <= 10:
		return 120
	case size <= 12:
		return 150
	case size <= 15:
		return 130
	case size <= 20:
		return 100
	default:
		return 100
	}
}

// proportion returns p(L), the target share of the budget for words of
// length L.
func proportion(length int) float64 {
	switch {
	case length <= 5:
		return 0.70
	case length <= 8:
		return 0.25
	default:
		return 0.05
	}
}

// Select samples at most TargetCount(size) candidate words from
// wordsByLength, skewed toward short words. rng controls the shuffle;
// callers that want deterministic output pass a seeded *rand.Rand.
func Select(rng *rand.Rand, wordsByLength map[int][]string, size int) []string {
	m := TargetCount(size)
	maxLen := size
	if maxLen > 15 {
		maxLen = 15
	}

	var out []string
	for length := 3; length <= maxLen; length++ {
		bucket := wordsByLength[length]
		if len(bucket) == 0 {
			continue
		}

		shuffled := make([]string, len(bucket))
		copy(shuffled, bucket)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		take := int(float64(m) * proportion(length) / 4.0)
		if take < 8 {
			take = 8
		}
		if take > len(shuffled) {
			take = len(shuffled)
		}

		out = append(out, shuffled[:take]...)
		if len(out) >= m {
			break
		}
	}

	if len(out) > m {
		out = out[:m]
	}
	return out
}
