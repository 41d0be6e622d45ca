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

func TestUnitOfWork_CommitPersistsWrites(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	month := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	loc := testutil.ProvisionPartition(t, testDB, partition.OpeningBalance, month)

	uow := NewUnitOfWorkFactory(testDB.DB).Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	userID := uuid.New()
	checkpoint := time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC)
	err := uow.LedgerRepository().MergeUpsert(ctx, loc, []models.OpeningBalance{
		{ID: uuid.New(), Amount: 100, CreationDate: checkpoint, UserID: userID},
	})
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	entries, err := NewLedgerRepository(testDB.DB).GetEntries(ctx, loc, checkpoint, []uuid.UUID{userID})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUnitOfWork_RollbackDiscardsWrites(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	month := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	loc := testutil.ProvisionPartition(t, testDB, partition.OpeningBalance, month)

	uow := NewUnitOfWorkFactory(testDB.DB).Create()
	require.NoError(t, uow.Begin(ctx))

	userID := uuid.New()
	checkpoint := time.Date(2026, 4, 10, 3, 0, 0, 0, time.UTC)
	err := uow.LedgerRepository().MergeUpsert(ctx, loc, []models.OpeningBalance{
		{ID: uuid.New(), Amount: 100, CreationDate: checkpoint, UserID: userID},
	})
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	entries, err := NewLedgerRepository(testDB.DB).GetEntries(ctx, loc, checkpoint, []uuid.UUID{userID})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnitOfWork_RollbackAfterCommitIsNoop(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	uow := NewUnitOfWorkFactory(testDB.DB).Create()
	require.NoError(t, uow.Begin(context.Background()))
	require.NoError(t, uow.Commit())
	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_DoubleBeginFails(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	uow := NewUnitOfWorkFactory(testDB.DB).Create()
	require.NoError(t, uow.Begin(context.Background()))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(context.Background()))
}
