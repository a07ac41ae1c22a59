package modality

// Aggregate reduces data points into raw weight totals, one map for the
// global scope and one per subject. Totals are not clamped here: negative
// totals are meaningful to the normalizer, which floors them for numerator
// purposes while letting them deflate the denominator.
func Aggregate(points []DataPoint) (map[Modality]float64, map[string]map[Modality]float64) {
	global := make(map[Modality]float64, len(All))
	bySubject := make(map[string]map[Modality]float64)

	for _, p := range points {
		global[p.Modality] += p.Weight

		if p.Subject == "" {
			continue
		}
		totals, ok := bySubject[p.Subject]
		if !ok {
			totals = make(map[Modality]float64, len(All))
			bySubject[p.Subject] = totals
		}
		totals[p.Modality] += p.Weight
	}

	return global, bySubject
}
