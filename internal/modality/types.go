package modality

import (
	"fmt"
	"time"
)

// Modality is one of the five fixed categories of learning style.
type Modality string

const (
	Visual      Modality = "visual"
	Logical     Modality = "logical"
	Verbal      Modality = "verbal"
	Kinesthetic Modality = "kinesthetic"
	Conceptual  Modality = "conceptual"
)

// All lists the modalities in their fixed enumeration order. Tie-breaks in
// normalization and classification follow this order, so it must not change.
var All = [5]Modality{Visual, Logical, Verbal, Kinesthetic, Conceptual}

// Parse validates a raw modality value. Unknown values are a producer-side
// contract violation and are rejected at the ingestion boundary.
func Parse(s string) (Modality, error) {
	switch Modality(s) {
	case Visual, Logical, Verbal, Kinesthetic, Conceptual:
		return Modality(s), nil
	}
	return "", fmt.Errorf("unknown modality %q", s)
}

// Style is a dominant or secondary learning style: a modality, or Balanced
// when no modality clears the dominance threshold.
type Style string

// Balanced means no single modality dominates. It is only ever assigned as a
// dominant style, never as a secondary one.
const Balanced Style = "balanced"

// DataPoint is one observed learner interaction. Weight magnitude reflects
// strength of evidence; a negative weight is a disengagement signal. Subject
// is empty for modality-agnostic activity.
type DataPoint struct {
	Modality  Modality  `json:"modality"`
	Weight    float64   `json:"weight"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Scores holds the normalized percentage per modality. The five values sum to
// exactly 100, except when total evidence weight is zero or negative, in which
// case all are 0.
type Scores struct {
	Visual      int `json:"visual"`
	Logical     int `json:"logical"`
	Verbal      int `json:"verbal"`
	Kinesthetic int `json:"kinesthetic"`
	Conceptual  int `json:"conceptual"`
}

// Of returns the score for a single modality.
func (s Scores) Of(m Modality) int {
	switch m {
	case Visual:
		return s.Visual
	case Logical:
		return s.Logical
	case Verbal:
		return s.Verbal
	case Kinesthetic:
		return s.Kinesthetic
	case Conceptual:
		return s.Conceptual
	}
	return 0
}

func (s *Scores) set(m Modality, v int) {
	switch m {
	case Visual:
		s.Visual = v
	case Logical:
		s.Logical = v
	case Verbal:
		s.Verbal = v
	case Kinesthetic:
		s.Kinesthetic = v
	case Conceptual:
		s.Conceptual = v
	}
}

// Sum returns the total of the five scores.
func (s Scores) Sum() int {
	return s.Visual + s.Logical + s.Verbal + s.Kinesthetic + s.Conceptual
}

// Profile is the derived learning style summary for one learner. It is always
// recomputed in full from the current evidence, never mutated in place.
type Profile struct {
	Scores            Scores            `json:"scores"`
	DominantStyle     Style             `json:"dominant_style"`
	SecondaryStyle    *Style            `json:"secondary_style,omitempty"`
	TotalInteractions int               `json:"total_interactions"`
	Confidence        int               `json:"confidence"`
	SubjectScores     map[string]Scores `json:"subject_scores,omitempty"`
}
