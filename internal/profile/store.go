package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kvistberg/mentor-platform/internal/modality"
	"github.com/kvistberg/mentor-platform/pkg/postgres"
)

// Store persists learning style profiles to Postgres, one row per learner.
// The durable copy is advisory: it exists for consumers that cannot
// recompute, and is always superseded by a fresh local recomputation when
// enough local evidence exists.
type Store struct {
	pg     postgres.Client
	logger *slog.Logger
}

// NewStore creates a new durable profile store
func NewStore(pg postgres.Client, logger *slog.Logger) *Store {
	return &Store{
		pg:     pg,
		logger: logger,
	}
}

// Schema is the learning_profiles table definition, applied by migrations:
//
//	CREATE TABLE learning_profiles (
//	    id                 UUID PRIMARY KEY,
//	    user_id            TEXT NOT NULL UNIQUE,
//	    visual             INTEGER NOT NULL,
//	    logical            INTEGER NOT NULL,
//	    verbal             INTEGER NOT NULL,
//	    kinesthetic        INTEGER NOT NULL,
//	    conceptual         INTEGER NOT NULL,
//	    dominant_style     TEXT NOT NULL,
//	    secondary_style    TEXT,
//	    total_interactions INTEGER NOT NULL,
//	    confidence         INTEGER NOT NULL,
//	    subject_scores     JSONB NOT NULL DEFAULT '{}',
//	    computed_at        TIMESTAMPTZ NOT NULL
//	);

// Upsert writes a freshly computed profile for a learner, overwriting any
// prior record. Concurrent writers race benignly: every write is a full
// recomputation from the same evidence set, so last-write-wins is accepted.
func (s *Store) Upsert(ctx context.Context, userID string, p *modality.Profile) error {
	subjectScores, err := json.Marshal(p.SubjectScores)
	if err != nil {
		return fmt.Errorf("failed to marshal subject scores: %w", err)
	}

	var secondary sql.NullString
	if p.SecondaryStyle != nil {
		secondary = sql.NullString{String: string(*p.SecondaryStyle), Valid: true}
	}

	query := `
		INSERT INTO learning_profiles (
			id, user_id, visual, logical, verbal, kinesthetic, conceptual,
			dominant_style, secondary_style, total_interactions, confidence,
			subject_scores, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			visual             = EXCLUDED.visual,
			logical            = EXCLUDED.logical,
			verbal             = EXCLUDED.verbal,
			kinesthetic        = EXCLUDED.kinesthetic,
			conceptual         = EXCLUDED.conceptual,
			dominant_style     = EXCLUDED.dominant_style,
			secondary_style    = EXCLUDED.secondary_style,
			total_interactions = EXCLUDED.total_interactions,
			confidence         = EXCLUDED.confidence,
			subject_scores     = EXCLUDED.subject_scores,
			computed_at        = EXCLUDED.computed_at`

	_, err = s.pg.Exec(ctx, query,
		uuid.New(),
		userID,
		p.Scores.Visual,
		p.Scores.Logical,
		p.Scores.Verbal,
		p.Scores.Kinesthetic,
		p.Scores.Conceptual,
		string(p.DominantStyle),
		secondary,
		p.TotalInteractions,
		p.Confidence,
		subjectScores,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile for user %s: %w", userID, err)
	}

	s.logger.Debug("Persisted learning profile",
		"user", userID,
		"dominant", p.DominantStyle,
		"confidence", p.Confidence)

	return nil
}

// Get reads the persisted profile for a learner. Absence of a record is not
// an error: it returns (nil, nil) so the bridge can distinguish "no profile
// yet" from a store failure.
func (s *Store) Get(ctx context.Context, userID string) (*modality.Profile, error) {
	query := `
		SELECT visual, logical, verbal, kinesthetic, conceptual,
		       dominant_style, secondary_style, total_interactions, confidence,
		       subject_scores
		FROM learning_profiles
		WHERE user_id = $1`

	var p modality.Profile
	var secondary sql.NullString
	var subjectScores []byte

	err := s.pg.QueryRow(ctx, query, userID).Scan(
		&p.Scores.Visual,
		&p.Scores.Logical,
		&p.Scores.Verbal,
		&p.Scores.Kinesthetic,
		&p.Scores.Conceptual,
		&p.DominantStyle,
		&secondary,
		&p.TotalInteractions,
		&p.Confidence,
		&subjectScores,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile for user %s: %w", userID, err)
	}

	if secondary.Valid {
		style := modality.Style(secondary.String)
		p.SecondaryStyle = &style
	}

	if len(subjectScores) > 0 {
		if err := json.Unmarshal(subjectScores, &p.SubjectScores); err != nil {
			s.logger.Warn("Failed to parse stored subject scores", "user", userID, "error", err)
		}
	}

	return &p, nil
}
