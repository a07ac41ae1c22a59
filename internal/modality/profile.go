package modality

// ComputeProfile derives a full learning style profile from a collection of
// data points. It is a pure function: identical evidence in, identical
// profile out, so callers may recompute freely. An empty collection yields a
// valid all-zero, balanced profile; callers decide whether that counts as
// "no profile" (see the repository bridge).
func ComputeProfile(points []DataPoint) *Profile {
	global, bySubject := Aggregate(points)

	scores := Normalize(global)
	dominant, secondary := Classify(scores)

	var subjectScores map[string]Scores
	if len(bySubject) > 0 {
		subjectScores = make(map[string]Scores, len(bySubject))
		for subject, totals := range bySubject {
			subjectScores[subject] = Normalize(totals)
		}
	}

	return &Profile{
		Scores:            scores,
		DominantStyle:     dominant,
		SecondaryStyle:    secondary,
		TotalInteractions: len(points),
		Confidence:        EstimateConfidence(len(points)),
		SubjectScores:     subjectScores,
	}
}
