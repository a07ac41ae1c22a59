package modality

import "testing"

func TestNormalize_SumInvariant(t *testing.T) {
	tests := []struct {
		name string
		raw  map[Modality]float64
	}{
		{"single modality", map[Modality]float64{Visual: 10}},
		{"even split", map[Modality]float64{Visual: 5, Logical: 5, Verbal: 5, Kinesthetic: 5, Conceptual: 5}},
		{"rounding to 99", map[Modality]float64{Visual: 1, Logical: 1, Verbal: 1}},
		{"rounding to 101", map[Modality]float64{Visual: 1, Logical: 1, Verbal: 1, Kinesthetic: 1, Conceptual: 3}},
		{"fractional weights", map[Modality]float64{Visual: 0.3, Logical: 0.7, Verbal: 1.9, Kinesthetic: 2.2}},
		{"negative depresses others", map[Modality]float64{Visual: 50, Logical: -10}},
		{"large skew", map[Modality]float64{Logical: 120, Verbal: 40}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := Normalize(tt.raw)
			if got := scores.Sum(); got != 100 {
				t.Errorf("expected sum 100, got %d (%+v)", got, scores)
			}
		})
	}
}

func TestNormalize_ZeroEvidence(t *testing.T) {
	tests := []struct {
		name string
		raw  map[Modality]float64
	}{
		{"empty", map[Modality]float64{}},
		{"all zero", map[Modality]float64{Visual: 0, Logical: 0}},
		{"net negative", map[Modality]float64{Visual: 2, Logical: -5}},
		{"exactly zero total", map[Modality]float64{Visual: 3, Verbal: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores := Normalize(tt.raw)
			if scores != (Scores{}) {
				t.Errorf("expected all-zero scores, got %+v", scores)
			}
		})
	}
}

func TestNormalize_Proportions(t *testing.T) {
	// 120 logical vs 40 verbal: 75/25 exactly
	scores := Normalize(map[Modality]float64{Logical: 120, Verbal: 40})
	if scores.Logical != 75 {
		t.Errorf("expected logical 75, got %d", scores.Logical)
	}
	if scores.Verbal != 25 {
		t.Errorf("expected verbal 25, got %d", scores.Verbal)
	}
	if scores.Visual != 0 || scores.Kinesthetic != 0 || scores.Conceptual != 0 {
		t.Errorf("expected remaining modalities 0, got %+v", scores)
	}
}

func TestNormalize_NegativeFlooredInNumerator(t *testing.T) {
	// visual 50, logical -10: total weight 40, so visual rounds to 125
	// before the remainder correction pulls it back to 100.
	scores := Normalize(map[Modality]float64{Visual: 50, Logical: -10})
	if scores.Visual != 100 {
		t.Errorf("expected visual 100, got %d", scores.Visual)
	}
	if scores.Logical != 0 {
		t.Errorf("expected logical 0 (never negative), got %d", scores.Logical)
	}
}

func TestNormalize_RemainderTieBreak(t *testing.T) {
	// Three equal thirds round to 33 each (sum 99); the remainder goes to the
	// highest score, ties broken by enumeration order, so visual gets 34.
	scores := Normalize(map[Modality]float64{Visual: 1, Logical: 1, Verbal: 1})
	if scores.Visual != 34 {
		t.Errorf("expected visual to absorb remainder (34), got %d", scores.Visual)
	}
	if scores.Logical != 33 || scores.Verbal != 33 {
		t.Errorf("expected logical/verbal 33, got %d/%d", scores.Logical, scores.Verbal)
	}

	// Same totals but visual absent: logical is now the earliest top modality.
	scores = Normalize(map[Modality]float64{Logical: 1, Verbal: 1, Conceptual: 1})
	if scores.Logical != 34 {
		t.Errorf("expected logical to absorb remainder (34), got %d", scores.Logical)
	}
}
