package service

import (
	"context"
	"time"

	"archiver/models"
	"archiver/partition"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) LatestCheckpoint(ctx context.Context, loc partition.Locator) (*time.Time, error) {
	args := m.Called(ctx, loc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockLedgerRepository) GetEntries(ctx context.Context, loc partition.Locator, at time.Time, userIDs []uuid.UUID) ([]models.OpeningBalance, error) {
	args := m.Called(ctx, loc, at, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OpeningBalance), args.Error(1)
}

func (m *MockLedgerRepository) MergeUpsert(ctx context.Context, loc partition.Locator, entries []models.OpeningBalance) error {
	args := m.Called(ctx, loc, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) ApplyWinLoss(ctx context.Context, loc partition.Locator, from time.Time, wlByUser map[uuid.UUID]int64) error {
	args := m.Called(ctx, loc, from, wlByUser)
	return args.Error(0)
}

// MockDebtRepository is a mock implementation of DebtRepository
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) MergeUpsert(ctx context.Context, loc partition.Locator, debts []models.CreditDebt) error {
	args := m.Called(ctx, loc, debts)
	return args.Error(0)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) FetchChunk(ctx context.Context, provider models.GameProvider, cutoff time.Time, startDate *time.Time, limit int) ([]models.Bet, error) {
	args := m.Called(ctx, provider, cutoff, startDate, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bet), args.Error(1)
}

func (m *MockBetRepository) DeleteByIDs(ctx context.Context, provider models.GameProvider, ids []uuid.UUID) error {
	args := m.Called(ctx, provider, ids)
	return args.Error(0)
}

func (m *MockBetRepository) GetUpline(ctx context.Context, userID uuid.UUID) ([]models.UplineUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UplineUser), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetPlayerPage(ctx context.Context, limit, offset int) ([]models.PlayerInfo, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PlayerInfo), args.Error(1)
}

// MockSystemLogRepository is a mock implementation of SystemLogRepository
type MockSystemLogRepository struct {
	mock.Mock
}

func (m *MockSystemLogRepository) Record(ctx context.Context, description string, kind models.SystemLogKind) error {
	args := m.Called(ctx, description, kind)
	return args.Error(0)
}

// MockArchiveRepository is a mock implementation of ArchiveRepository
type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) InsertBets(ctx context.Context, provider models.GameProvider, bets []models.Bet) error {
	args := m.Called(ctx, provider, bets)
	return args.Error(0)
}

func (m *MockArchiveRepository) StageDetails(ctx context.Context, details []models.BetDetail) error {
	args := m.Called(ctx, details)
	return args.Error(0)
}

func (m *MockArchiveRepository) FlattenDetails(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDetailFetcher is a mock implementation of DetailFetcher
type MockDetailFetcher struct {
	mock.Mock
}

func (m *MockDetailFetcher) FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error) {
	args := m.Called(ctx, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetDetail), args.Error(1)
}

// MockDetailRegistry is a mock implementation of DetailRegistry
type MockDetailRegistry struct {
	mock.Mock
}

func (m *MockDetailRegistry) Fetcher(provider models.GameProvider) (DetailFetcher, bool) {
	args := m.Called(provider)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(DetailFetcher), args.Bool(1)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	bets   BetRepository
	ledger LedgerRepository
	debts  DebtRepository
}

// NewMockUnitOfWork wires a unit of work around pre-built repository mocks.
func NewMockUnitOfWork(bets BetRepository, ledger LedgerRepository, debts DebtRepository) *MockUnitOfWork {
	return &MockUnitOfWork{bets: bets, ledger: ledger, debts: debts}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) BetRepository() BetRepository {
	return m.bets
}

func (m *MockUnitOfWork) LedgerRepository() LedgerRepository {
	return m.ledger
}

func (m *MockUnitOfWork) DebtRepository() DebtRepository {
	return m.debts
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
