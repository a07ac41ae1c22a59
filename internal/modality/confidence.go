package modality

import "math"

// Evidence thresholds for profile quality.
const (
	// ConfidenceCeiling is the observation count at which confidence saturates.
	ConfidenceCeiling = 100

	// MinEvidenceFloor is the minimum observation count for a locally computed
	// profile to be treated as authoritative by the repository bridge.
	MinEvidenceFloor = 20
)

// EstimateConfidence maps evidence volume to a 0-100 confidence scalar.
// Confidence rises linearly with the global observation count and saturates
// at the ceiling.
func EstimateConfidence(count int) int {
	if count <= 0 {
		return 0
	}
	c := int(math.Round(float64(count) / float64(ConfidenceCeiling) * 100))
	if c > 100 {
		return 100
	}
	return c
}
