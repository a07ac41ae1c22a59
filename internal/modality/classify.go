package modality

// Classification thresholds.
const (
	// DominanceThreshold is the score a top modality must exceed to be named
	// dominant; otherwise the profile is balanced.
	DominanceThreshold = 25

	// SecondaryThreshold is the score the runner-up must exceed to be named
	// a secondary style.
	SecondaryThreshold = 20
)

// Classify selects the dominant and optional secondary style from normalized
// scores. Ranking ties are broken by the fixed enumeration order. Balanced is
// never assigned as a secondary style.
func Classify(s Scores) (Style, *Style) {
	// Top two by score; strict comparison keeps earlier modalities ahead on ties.
	first, second := All[0], All[1]
	if s.Of(second) > s.Of(first) {
		first, second = second, first
	}
	for _, m := range All[2:] {
		switch {
		case s.Of(m) > s.Of(first):
			first, second = m, first
		case s.Of(m) > s.Of(second):
			second = m
		}
	}

	dominant := Balanced
	if s.Of(first) > DominanceThreshold {
		dominant = Style(first)
	}

	if s.Of(second) > SecondaryThreshold && Style(second) != dominant {
		secondary := Style(second)
		return dominant, &secondary
	}

	return dominant, nil
}
