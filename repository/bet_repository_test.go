package repository

import (
	"context"
	"testing"
	"time"

	"archiver/models"
	"archiver/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBetRepository_FetchChunk(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	provider := models.ProviderKingmaker
	testutil.CreateBetTable(t, testDB, provider)

	player := uuid.New()
	cutoff := time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC)

	settled := testutil.CreateTestBet(player, "player1", cutoff.Add(-2*time.Hour))
	older := testutil.CreateTestBet(player, "player1", cutoff.Add(-26*time.Hour))
	tooNew := testutil.CreateTestBet(player, "player1", cutoff.Add(time.Hour))
	active := testutil.CreateTestBet(player, "player1", cutoff.Add(-3*time.Hour))
	active.Status = models.BetStatusActive
	pending := testutil.CreateTestBet(player, "player1", cutoff.Add(-4*time.Hour))
	pending.Status = models.BetStatusPending

	for _, bet := range []*models.Bet{settled, older, tooNew, active, pending} {
		testutil.InsertBet(t, testDB, provider, bet)
	}

	t.Run("only settled bets before cutoff, oldest first", func(t *testing.T) {
		bets, err := repo.FetchChunk(ctx, provider, cutoff, nil, 100)
		require.NoError(t, err)
		require.Len(t, bets, 2)
		assert.Equal(t, older.ID, bets[0].ID)
		assert.Equal(t, settled.ID, bets[1].ID)
	})

	t.Run("limit bounds the chunk", func(t *testing.T) {
		bets, err := repo.FetchChunk(ctx, provider, cutoff, nil, 1)
		require.NoError(t, err)
		require.Len(t, bets, 1)
		assert.Equal(t, older.ID, bets[0].ID)
	})

	t.Run("start date excludes earlier bets", func(t *testing.T) {
		start := cutoff.Add(-12 * time.Hour)
		bets, err := repo.FetchChunk(ctx, provider, cutoff, &start, 100)
		require.NoError(t, err)
		require.Len(t, bets, 1)
		assert.Equal(t, settled.ID, bets[0].ID)
	})

	t.Run("scans full row", func(t *testing.T) {
		bets, err := repo.FetchChunk(ctx, provider, cutoff, nil, 100)
		require.NoError(t, err)
		got := bets[1]
		assert.Equal(t, settled.Username, got.Username)
		assert.Equal(t, settled.Currency, got.Currency)
		assert.Equal(t, settled.Status, got.Status)
		assert.Len(t, got.CommissionAmount, models.PositionCount)
		assert.Len(t, got.FundsDelta, models.PositionCount)
	})
}

func TestBetRepository_DeleteByIDs(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	provider := models.ProviderAmeba
	testutil.CreateBetTable(t, testDB, provider)

	player := uuid.New()
	settledAt := time.Date(2026, 3, 15, 1, 0, 0, 0, time.UTC)
	kept := testutil.CreateTestBet(player, "player1", settledAt)
	gone := testutil.CreateTestBet(player, "player1", settledAt)
	testutil.InsertBet(t, testDB, provider, kept)
	testutil.InsertBet(t, testDB, provider, gone)

	t.Run("deletes exactly the given ids", func(t *testing.T) {
		err := repo.DeleteByIDs(ctx, provider, []uuid.UUID{gone.ID})
		require.NoError(t, err)

		var count int
		err = testDB.DB.Pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM public."+provider.BetTable()).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("missing ids fail the delete", func(t *testing.T) {
		err := repo.DeleteByIDs(ctx, provider, []uuid.UUID{kept.ID, uuid.New()})
		require.Error(t, err)
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		err := repo.DeleteByIDs(ctx, provider, nil)
		require.NoError(t, err)
	})
}

func TestBetRepository_GetUpline(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	owner := uuid.New()
	agent := uuid.New()
	player := uuid.New()

	testutil.InsertUser(t, testDB, owner, "owner1", models.PositionOwner, true)
	testutil.InsertUser(t, testDB, agent, "agent1", models.PositionAgent, true)
	testutil.InsertUser(t, testDB, player, "player1", models.PositionPlayer, true)
	// Stored unordered; the query orders by position.
	testutil.InsertUpline(t, testDB, player, []uuid.UUID{agent, owner})

	t.Run("ordered from owner down", func(t *testing.T) {
		upline, err := repo.GetUpline(ctx, player)
		require.NoError(t, err)
		require.Len(t, upline, 2)

		assert.Equal(t, owner, upline[0].ID)
		assert.Equal(t, models.PositionOwner, upline[0].Position)
		assert.Equal(t, agent, upline[1].ID)
		assert.Equal(t, "agent1", upline[1].Username)
	})

	t.Run("unknown user yields empty chain", func(t *testing.T) {
		upline, err := repo.GetUpline(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, upline)
	})
}
