package profile

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvistberg/mentor-platform/internal/modality"
	"github.com/kvistberg/mentor-platform/pkg/config"
	"github.com/kvistberg/mentor-platform/pkg/postgres"
)

// Integration tests for the profile store - require PostgreSQL running locally
// with the learning_profiles table applied.
// Run with: go test -v ./internal/profile/... -run TestStore

func getTestConfig() *config.Config {
	cfg := config.NewConfig()
	if host := os.Getenv("MENTOR_POSTGRES_HOST"); host != "" {
		cfg.PostgresHost = host
	}
	return cfg
}

func TestStore_UpsertThenGetRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}

	cfg := getTestConfig()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx := context.Background()
	pg := postgres.NewClient(cfg, logger)
	if err := pg.Connect(ctx); err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer pg.Disconnect()

	store := NewStore(pg, logger)

	secondary := modality.Style(modality.Verbal)
	want := &modality.Profile{
		Scores:            modality.Scores{Visual: 40, Logical: 20, Verbal: 25, Kinesthetic: 10, Conceptual: 5},
		DominantStyle:     modality.Style(modality.Visual),
		SecondaryStyle:    &secondary,
		TotalInteractions: 64,
		Confidence:        64,
		SubjectScores: map[string]modality.Scores{
			"math": {Logical: 80, Visual: 20},
		},
	}

	userID := "store-test-learner"
	require.NoError(t, store.Upsert(ctx, userID, want))

	got, err := store.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.Scores, got.Scores)
	assert.Equal(t, want.DominantStyle, got.DominantStyle)
	require.NotNil(t, got.SecondaryStyle)
	assert.Equal(t, *want.SecondaryStyle, *got.SecondaryStyle)
	assert.Equal(t, want.TotalInteractions, got.TotalInteractions)
	assert.Equal(t, want.Confidence, got.Confidence)
	assert.Equal(t, want.SubjectScores, got.SubjectScores)

	// Second upsert overwrites the first record for the same identity
	want.Scores = modality.Scores{Visual: 100}
	want.SecondaryStyle = nil
	require.NoError(t, store.Upsert(ctx, userID, want))

	got, err = store.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 100, got.Scores.Visual)
	assert.Nil(t, got.SecondaryStyle)
}

func TestStore_GetMissingUserReturnsAbsence(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}

	cfg := getTestConfig()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx := context.Background()
	pg := postgres.NewClient(cfg, logger)
	if err := pg.Connect(ctx); err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer pg.Disconnect()

	store := NewStore(pg, logger)

	got, err := store.Get(ctx, "no-such-learner")
	require.NoError(t, err)
	assert.Nil(t, got)
}
