package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eartask-go/internal/adapters/persistence"
	"github.com/andrescamacho/eartask-go/internal/domain/batch"
	"github.com/andrescamacho/eartask-go/test/helpers"
)

func TestRunRepository_AddAndListRecent(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	runs := []*batch.Run{
		{ID: "run-1", Kind: batch.KindSearch, Total: 10, SuccessCount: 1, FailCount: 3, StoppedEarly: true,
			StartedAt: base, FinishedAt: base.Add(4 * time.Second)},
		{ID: "run-2", Kind: batch.KindCollect, Total: 3, SuccessCount: 3,
			StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour + 2*time.Second)},
		{ID: "run-3", Kind: batch.KindSupplement, Total: 2, SuccessCount: 1, FailCount: 1,
			StartedAt: base.Add(2 * time.Hour), FinishedAt: base.Add(2*time.Hour + time.Second)},
	}
	for _, run := range runs {
		require.NoError(t, repo.Add(ctx, run))
	}

	// Act
	recent, err := repo.ListRecent(ctx, 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "run-3", recent[0].ID)
	assert.Equal(t, "run-2", recent[1].ID)
	assert.Equal(t, batch.KindCollect, recent[1].Kind)
	assert.Equal(t, 3, recent[1].SuccessCount)
}

func TestRunRepository_PreservesCounts(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)
	ctx := context.Background()
	started := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	run := &batch.Run{ID: "run-x", Kind: batch.KindSearch, Total: 10, SuccessCount: 1, FailCount: 3,
		StoppedEarly: true, StartedAt: started, FinishedAt: started.Add(3 * time.Second)}
	require.NoError(t, repo.Add(ctx, run))

	// Act
	recent, err := repo.ListRecent(ctx, 0)

	// Assert
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, 10, recent[0].Total)
	assert.Equal(t, 1, recent[0].SuccessCount)
	assert.Equal(t, 3, recent[0].FailCount)
	assert.True(t, recent[0].StoppedEarly)
	assert.Equal(t, 3*time.Second, recent[0].Duration())
}

func TestRunRepository_ListRecentEmpty(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormRunRepository(db)

	// Act
	recent, err := repo.ListRecent(context.Background(), 5)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, recent)
}
