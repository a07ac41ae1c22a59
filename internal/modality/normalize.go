package modality

import "math"

// Normalize converts raw weight totals for one scope into percentages that
// sum to exactly 100. Negative raw totals are floored to zero in the
// numerators only; they still depress every share through the denominator.
// A total weight of zero or less yields all-zero scores.
func Normalize(raw map[Modality]float64) Scores {
	var totalWeight float64
	for _, m := range All {
		totalWeight += raw[m]
	}

	var scores Scores
	if totalWeight <= 0 {
		return scores
	}

	for _, m := range All {
		w := raw[m]
		if w < 0 {
			w = 0
		}
		scores.set(m, int(math.Round(w/totalWeight*100)))
	}

	// Independent rounding can leave the sum off 100. Push the remainder onto
	// the highest-scoring modality, earlier enumeration order winning ties.
	if diff := 100 - scores.Sum(); diff != 0 {
		top := All[0]
		for _, m := range All[1:] {
			if scores.Of(m) > scores.Of(top) {
				top = m
			}
		}
		scores.set(top, scores.Of(top)+diff)
	}

	return scores
}
