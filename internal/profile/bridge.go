package profile

import (
	"context"
	"log/slog"

	"github.com/kvistberg/mentor-platform/internal/modality"
)

// EvidenceSource provides the local behavioral evidence for a learner
type EvidenceSource interface {
	// Count returns the number of data points available for a learner
	Count(ctx context.Context, userID string) (int, error)

	// Points returns all data points for a learner
	Points(ctx context.Context, userID string) ([]modality.DataPoint, error)
}

// ProfileStore is the durable remote profile record
type ProfileStore interface {
	// Upsert overwrites the stored profile for a learner
	Upsert(ctx context.Context, userID string, p *modality.Profile) error

	// Get reads the stored profile, (nil, nil) when no record exists
	Get(ctx context.Context, userID string) (*modality.Profile, error)
}

// Bridge reconciles local evidence against the durable profile record.
// Decision table, in strict order:
//
//  1. Local evidence count >= floor: recompute locally, authoritative.
//  2. Persist the fresh profile; a write failure is logged and ignored,
//     it never invalidates the returned profile.
//  3. Local evidence below the floor: return the durable record verbatim.
//  4. No local evidence and no durable record: return absence (nil),
//     so consumers can render an explicit "not enough data yet" state.
type Bridge struct {
	evidence EvidenceSource
	store    ProfileStore
	logger   *slog.Logger
}

// NewBridge creates a new repository bridge
func NewBridge(evidence EvidenceSource, store ProfileStore, logger *slog.Logger) *Bridge {
	return &Bridge{
		evidence: evidence,
		store:    store,
		logger:   logger,
	}
}

// Profile returns the active learning style profile for a learner, or nil
// when there is not yet enough data anywhere. A nil profile is not an error.
func (b *Bridge) Profile(ctx context.Context, userID string) (*modality.Profile, error) {
	count, err := b.evidence.Count(ctx, userID)
	if err != nil {
		// A cache failure is treated like insufficient local evidence
		b.logger.Warn("Failed to count local evidence, falling back to stored profile",
			"user", userID, "error", err)
		count = 0
	}

	if count >= modality.MinEvidenceFloor {
		points, err := b.evidence.Points(ctx, userID)
		if err == nil {
			computed := modality.ComputeProfile(points)

			if err := b.store.Upsert(ctx, userID, computed); err != nil {
				// Fire-and-forget: the caller still gets the fresh profile
				b.logger.Warn("Failed to persist recomputed profile",
					"user", userID, "error", err)
			}

			return computed, nil
		}

		b.logger.Warn("Failed to fetch local evidence, falling back to stored profile",
			"user", userID, "error", err)
	}

	stored, err := b.store.Get(ctx, userID)
	if err != nil {
		// A read failure is treated identically to absence of a record
		b.logger.Warn("Failed to read stored profile", "user", userID, "error", err)
		return nil, nil
	}

	return stored, nil
}
