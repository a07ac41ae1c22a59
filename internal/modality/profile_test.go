package modality

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

func makePoints(modality Modality, count int, weight float64, subject string) []DataPoint {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	points := make([]DataPoint, count)
	for i := range points {
		points[i] = DataPoint{
			Modality:  modality,
			Weight:    weight,
			Subject:   subject,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return points
}

func TestComputeProfile_SingleModality(t *testing.T) {
	// 10 visual points, weight 1 each
	profile := ComputeProfile(makePoints(Visual, 10, 1, ""))

	expected := Scores{Visual: 100}
	if profile.Scores != expected {
		t.Errorf("expected %+v, got %+v", expected, profile.Scores)
	}
	if profile.DominantStyle != Style(Visual) {
		t.Errorf("expected dominant visual, got %s", profile.DominantStyle)
	}
	if profile.Confidence != 10 {
		t.Errorf("expected confidence 10, got %d", profile.Confidence)
	}
	if profile.TotalInteractions != 10 {
		t.Errorf("expected 10 interactions, got %d", profile.TotalInteractions)
	}
}

func TestComputeProfile_EvenSplit(t *testing.T) {
	// 25 points, 5 per modality: every score 20, no dominant, no secondary
	var points []DataPoint
	for _, m := range All {
		points = append(points, makePoints(m, 5, 1, "")...)
	}

	profile := ComputeProfile(points)

	for _, m := range All {
		if got := profile.Scores.Of(m); got != 20 {
			t.Errorf("expected %s score 20, got %d", m, got)
		}
	}
	if profile.Scores.Sum() != 100 {
		t.Errorf("expected sum 100, got %d", profile.Scores.Sum())
	}
	if profile.DominantStyle != Balanced {
		t.Errorf("expected balanced, got %s", profile.DominantStyle)
	}
	if profile.SecondaryStyle != nil {
		t.Errorf("expected no secondary style, got %s", *profile.SecondaryStyle)
	}
	if profile.Confidence != 25 {
		t.Errorf("expected confidence 25, got %d", profile.Confidence)
	}
}

func TestComputeProfile_WeightedSkew(t *testing.T) {
	// 60 logical at weight 2 (120 total) and 40 verbal at weight 1 (40 total)
	points := append(makePoints(Logical, 60, 2, ""), makePoints(Verbal, 40, 1, "")...)

	profile := ComputeProfile(points)

	if profile.Scores.Logical != 75 {
		t.Errorf("expected logical 75, got %d", profile.Scores.Logical)
	}
	if profile.Scores.Verbal != 25 {
		t.Errorf("expected verbal 25, got %d", profile.Scores.Verbal)
	}
	if profile.Scores.Sum() != 100 {
		t.Errorf("expected sum 100, got %d", profile.Scores.Sum())
	}
	if profile.DominantStyle != Style(Logical) {
		t.Errorf("expected dominant logical, got %s", profile.DominantStyle)
	}
	if profile.SecondaryStyle == nil || *profile.SecondaryStyle != Style(Verbal) {
		t.Errorf("expected secondary verbal, got %v", profile.SecondaryStyle)
	}
	// 100 points total: confidence saturated
	if profile.Confidence != 100 {
		t.Errorf("expected confidence 100, got %d", profile.Confidence)
	}
}

func TestComputeProfile_ConfidenceSaturation(t *testing.T) {
	profile := ComputeProfile(makePoints(Conceptual, 120, 1, ""))
	if profile.Confidence != 100 {
		t.Errorf("expected confidence 100 at 120 points, got %d", profile.Confidence)
	}
}

func TestComputeProfile_Empty(t *testing.T) {
	profile := ComputeProfile(nil)

	if profile.Scores != (Scores{}) {
		t.Errorf("expected all-zero scores, got %+v", profile.Scores)
	}
	if profile.DominantStyle != Balanced {
		t.Errorf("expected balanced, got %s", profile.DominantStyle)
	}
	if profile.TotalInteractions != 0 || profile.Confidence != 0 {
		t.Errorf("expected zero interactions and confidence, got %d/%d",
			profile.TotalInteractions, profile.Confidence)
	}
	if profile.SubjectScores != nil {
		t.Errorf("expected no subject scores, got %v", profile.SubjectScores)
	}
}

func TestComputeProfile_SubjectScopes(t *testing.T) {
	points := append(makePoints(Visual, 30, 1, "geometry"), makePoints(Verbal, 10, 1, "history")...)
	points = append(points, makePoints(Logical, 10, 1, "")...)

	profile := ComputeProfile(points)

	if len(profile.SubjectScores) != 2 {
		t.Fatalf("expected 2 subject profiles, got %d", len(profile.SubjectScores))
	}

	geometry := profile.SubjectScores["geometry"]
	if geometry.Visual != 100 {
		t.Errorf("expected geometry visual 100, got %+v", geometry)
	}

	history := profile.SubjectScores["history"]
	if history.Verbal != 100 {
		t.Errorf("expected history verbal 100, got %+v", history)
	}

	// Subject-less points contribute to the global scope only
	if profile.Scores.Logical != 20 {
		t.Errorf("expected global logical 20, got %d", profile.Scores.Logical)
	}
	if profile.Scores.Sum() != 100 {
		t.Errorf("expected global sum 100, got %d", profile.Scores.Sum())
	}
}

func TestComputeProfile_Idempotent(t *testing.T) {
	points := append(makePoints(Kinesthetic, 17, 1.5, "chemistry"), makePoints(Visual, 29, 0.5, "")...)
	points = append(points, makePoints(Verbal, 3, -1, "chemistry")...)

	first, err := json.Marshal(ComputeProfile(points))
	if err != nil {
		t.Fatal(err)
	}
	second, err := json.Marshal(ComputeProfile(points))
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Errorf("recomputation differs:\n%s\n%s", first, second)
	}
}

func TestComputeProfile_SumInvariantUnderMixedWeights(t *testing.T) {
	// A spread of awkward weights across all modalities; the sum must hold
	// for every per-subject scope too.
	var points []DataPoint
	for i, m := range All {
		points = append(points, makePoints(m, 3+i, 0.7+float64(i)*0.31, fmt.Sprintf("subject-%d", i%2))...)
	}

	profile := ComputeProfile(points)

	if got := profile.Scores.Sum(); got != 100 {
		t.Errorf("global sum: expected 100, got %d", got)
	}
	for subject, scores := range profile.SubjectScores {
		if got := scores.Sum(); got != 100 {
			t.Errorf("subject %s sum: expected 100, got %d", subject, got)
		}
	}
}
