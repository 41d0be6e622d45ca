package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"archiver/models"
	"archiver/partition"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// archiverHarness wires a full service stack on mocks with the rollforward
// guard already satisfied, so Run goes straight to draining.
type archiverHarness struct {
	users      *MockUserRepository
	ledger     *MockLedgerRepository
	bets       *MockBetRepository
	debts      *MockDebtRepository
	archive    *MockArchiveRepository
	registry   *MockDetailRegistry
	uow        *MockUnitOfWork
	uowFactory *MockUnitOfWorkFactory
	svc        *ArchiverService
}

func newArchiverHarness(t *testing.T, chunkSize int) *archiverHarness {
	t.Helper()

	h := &archiverHarness{
		users:      new(MockUserRepository),
		ledger:     new(MockLedgerRepository),
		bets:       new(MockBetRepository),
		debts:      new(MockDebtRepository),
		archive:    new(MockArchiveRepository),
		registry:   new(MockDetailRegistry),
		uowFactory: new(MockUnitOfWorkFactory),
	}
	h.uow = NewMockUnitOfWork(h.bets, h.ledger, h.debts)

	todayLoc, err := partition.For(partition.OpeningBalance, Today())
	require.NoError(t, err)
	checkpoint := CutoffTime(Tomorrow())
	h.ledger.On("LatestCheckpoint", mock.Anything, todayLoc).Return(&checkpoint, nil)

	h.svc = NewArchiverService(
		NewRollforwardService(h.users, h.ledger, 100),
		NewSettlementService(h.archive, h.registry),
		h.bets,
		h.uowFactory,
		chunkSize,
	)
	return h
}

func TestArchiverService_Run_DrainsUntilEmpty(t *testing.T) {
	h := newArchiverHarness(t, 2)

	player := uuid.New()
	settledAt := CutoffTime(Today()).Add(-time.Hour)
	first := []models.Bet{
		settledBet(player, "player1", 100, settledAt),
		settledBet(player, "player1", -50, settledAt),
	}
	second := []models.Bet{settledBet(player, "player1", 30, settledAt)}

	cutoff := CutoffTime(Today().AddDate(0, 0, -1))

	// First provider yields two chunks, every other provider is empty.
	drained := models.AllProviders()[0]
	h.bets.On("FetchChunk", mock.Anything, drained, cutoff, (*time.Time)(nil), 2).
		Return(first, nil).Once()
	h.bets.On("FetchChunk", mock.Anything, drained, cutoff, (*time.Time)(nil), 2).
		Return(second, nil).Once()
	h.bets.On("FetchChunk", mock.Anything, drained, cutoff, (*time.Time)(nil), 2).
		Return([]models.Bet{}, nil).Once()
	h.bets.On("FetchChunk", mock.Anything, mock.Anything, cutoff, (*time.Time)(nil), 2).
		Return([]models.Bet{}, nil)

	h.uowFactory.On("Create").Return(h.uow)
	h.uow.On("Begin", mock.Anything).Return(nil)
	h.uow.On("Commit").Return(nil)
	h.uow.On("Rollback").Return(nil)

	h.bets.On("GetUpline", mock.Anything, player).Return([]models.UplineUser{}, nil)
	h.registry.On("Fetcher", mock.Anything).Return(nil, false)
	h.archive.On("InsertBets", mock.Anything, drained, mock.Anything).Return(nil)
	h.bets.On("DeleteByIDs", mock.Anything, drained, mock.Anything).Return(nil)
	h.ledger.On("ApplyWinLoss", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := h.svc.Run(context.Background())
	require.NoError(t, err)

	// Two non-empty chunks means two committed units of work.
	h.uow.AssertNumberOfCalls(t, "Commit", 2)
	h.bets.AssertExpectations(t)
}

func TestArchiverService_Run_RollsBackFailedChunk(t *testing.T) {
	h := newArchiverHarness(t, 10)

	player := uuid.New()
	bets := []models.Bet{settledBet(player, "player1", 100, CutoffTime(Today()).Add(-time.Hour))}

	failing := models.AllProviders()[0]
	h.bets.On("FetchChunk", mock.Anything, failing, mock.Anything, (*time.Time)(nil), 10).
		Return(bets, nil).Once()

	h.uowFactory.On("Create").Return(h.uow)
	h.uow.On("Begin", mock.Anything).Return(nil)
	h.uow.On("Rollback").Return(nil)

	h.bets.On("GetUpline", mock.Anything, player).
		Return(nil, errors.New("upline query failed"))

	err := h.svc.Run(context.Background())
	require.Error(t, err)

	h.uow.AssertCalled(t, "Rollback")
	h.uow.AssertNotCalled(t, "Commit")
}

func TestArchiverService_Run_StopsWhenRollforwardFails(t *testing.T) {
	users := new(MockUserRepository)
	ledger := new(MockLedgerRepository)
	bets := new(MockBetRepository)

	ledger.On("LatestCheckpoint", mock.Anything, mock.Anything).
		Return(nil, errors.New("partition missing"))

	svc := NewArchiverService(
		NewRollforwardService(users, ledger, 100),
		NewSettlementService(new(MockArchiveRepository), new(MockDetailRegistry)),
		bets,
		new(MockUnitOfWorkFactory),
		1000,
	)

	err := svc.Run(context.Background())
	require.Error(t, err)
	bets.AssertNotCalled(t, "FetchChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
