package repository

import (
	"context"
	"testing"
	"time"

	"archiver/models"
	"archiver/partition"
	"archiver/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_LatestCheckpoint(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	loc := testutil.ProvisionPartition(t, testDB, partition.OpeningBalance, month)

	t.Run("empty partition yields nil", func(t *testing.T) {
		checkpoint, err := repo.LatestCheckpoint(ctx, loc)
		require.NoError(t, err)
		assert.Nil(t, checkpoint)
	})

	t.Run("returns newest checkpoint", func(t *testing.T) {
		userID := uuid.New()
		older := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
		newer := time.Date(2026, 3, 12, 3, 0, 0, 0, time.UTC)

		err := repo.MergeUpsert(ctx, loc, []models.OpeningBalance{
			{ID: uuid.New(), Amount: 100, CreationDate: older, UserID: userID},
			{ID: uuid.New(), Amount: 100, CreationDate: newer, UserID: userID},
		})
		require.NoError(t, err)

		checkpoint, err := repo.LatestCheckpoint(ctx, loc)
		require.NoError(t, err)
		require.NotNil(t, checkpoint)
		assert.True(t, checkpoint.Equal(newer))
	})
}

func TestLedgerRepository_MergeUpsert_AddsOnConflict(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	month := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	loc := testutil.ProvisionPartition(t, testDB, partition.OpeningBalance, month)

	userID := uuid.New()
	checkpoint := time.Date(2026, 4, 5, 3, 0, 0, 0, time.UTC)

	err := repo.MergeUpsert(ctx, loc, []models.OpeningBalance{
		{ID: uuid.New(), Amount: 1000, CreationDate: checkpoint, UserID: userID},
	})
	require.NoError(t, err)

	// A second row for the same user and checkpoint merges additively.
	err = repo.MergeUpsert(ctx, loc, []models.OpeningBalance{
		{ID: uuid.New(), Amount: -250, CreationDate: checkpoint, UserID: userID},
	})
	require.NoError(t, err)

	entries, err := repo.GetEntries(ctx, loc, checkpoint, []uuid.UUID{userID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(750), entries[0].Amount)
}

func TestLedgerRepository_GetEntries_FiltersUsersAndCheckpoint(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	month := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	loc := testutil.ProvisionPartition(t, testDB, partition.OpeningBalance, month)

	wanted := uuid.New()
	other := uuid.New()
	checkpoint := time.Date(2026, 5, 10, 3, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 5, 11, 3, 0, 0, 0, time.UTC)

	err := repo.MergeUpsert(ctx, loc, []models.OpeningBalance{
		{ID: uuid.New(), Amount: 500, CreationDate: checkpoint, UserID: wanted},
		{ID: uuid.New(), Amount: 600, CreationDate: newer, UserID: wanted},
		{ID: uuid.New(), Amount: 700, CreationDate: checkpoint, UserID: other},
	})
	require.NoError(t, err)

	entries, err := repo.GetEntries(ctx, loc, checkpoint, []uuid.UUID{wanted})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, wanted, entries[0].UserID)
	assert.Equal(t, int64(500), entries[0].Amount)
}

func TestLedgerRepository_ApplyWinLoss(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewLedgerRepository(testDB.DB)
	ctx := context.Background()

	month := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	loc := testutil.ProvisionPartition(t, testDB, partition.OpeningBalance, month)

	userID := uuid.New()
	before := time.Date(2026, 6, 9, 3, 0, 0, 0, time.UTC)
	from := time.Date(2026, 6, 10, 3, 0, 0, 0, time.UTC)
	after := time.Date(2026, 6, 11, 3, 0, 0, 0, time.UTC)

	err := repo.MergeUpsert(ctx, loc, []models.OpeningBalance{
		{ID: uuid.New(), Amount: 1000, CreationDate: before, UserID: userID},
		{ID: uuid.New(), Amount: 1000, CreationDate: from, UserID: userID},
		{ID: uuid.New(), Amount: 1000, CreationDate: after, UserID: userID},
	})
	require.NoError(t, err)

	err = repo.ApplyWinLoss(ctx, loc, from, map[uuid.UUID]int64{userID: -300})
	require.NoError(t, err)

	// Only checkpoints at or after the settlement timestamp shift.
	for _, tc := range []struct {
		at       time.Time
		expected int64
	}{
		{before, 1000},
		{from, 700},
		{after, 700},
	} {
		entries, err := repo.GetEntries(ctx, loc, tc.at, []uuid.UUID{userID})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, tc.expected, entries[0].Amount, "checkpoint %s", tc.at)
	}
}
