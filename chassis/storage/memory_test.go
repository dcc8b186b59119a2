package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemRepositoryInsertGet(t *testing.T) {
	repo := InitMemRepository()
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &Analysis{
		ID:              "a1",
		SimilarityScore: 72.5,
		SummaryEN:       "button color changed",
		Context:         "mobile app",
	}))

	found, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, 72.5, found.SimilarityScore)
	require.Equal(t, "mobile app", found.Context)
	require.False(t, found.CreatedDt.IsZero())

	// Mutating the returned copy does not touch the stored record.
	found.SummaryEN = "changed"
	again, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "button color changed", again.SummaryEN)
}

func TestMemRepositoryGetMissing(t *testing.T) {
	repo := InitMemRepository()
	_, err := repo.Get(context.Background(), "missing")
	require.Equal(t, ErrNotFound, err)
}

func TestMemRepositoryListRecent(t *testing.T) {
	repo := InitMemRepository()
	ctx := context.Background()
	now := time.Now()

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Insert(ctx, &Analysis{
			ID:        id,
			CreatedDt: now.Add(time.Duration(i) * time.Minute),
		}))
	}

	analyses, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, analyses, 2)
	require.Equal(t, "new", analyses[0].ID)
	require.Equal(t, "mid", analyses[1].ID)
}

func TestMemRepositoryCleanOldAnalyses(t *testing.T) {
	repo := InitMemRepository()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.Insert(ctx, &Analysis{ID: "stale", CreatedDt: now.Add(-2 * time.Hour)}))
	require.NoError(t, repo.Insert(ctx, &Analysis{ID: "fresh", CreatedDt: now}))

	cleaned, err := repo.CleanOldAnalyses(ctx, 3600)
	require.NoError(t, err)
	require.Equal(t, 1, cleaned)

	_, err = repo.Get(ctx, "stale")
	require.Equal(t, ErrNotFound, err)
	_, err = repo.Get(ctx, "fresh")
	require.NoError(t, err)
}
