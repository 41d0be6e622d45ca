package service

import (
	"context"
	"time"

	"archiver/models"
	"archiver/partition"

	"github.com/google/uuid"
)

// LedgerRepository is the opening-balance store contract. All methods target
// one monthly partition addressed by a partition.Locator.
type LedgerRepository interface {
	// LatestCheckpoint returns the newest checkpoint timestamp in the
	// partition, or nil when the partition is empty.
	LatestCheckpoint(ctx context.Context, loc partition.Locator) (*time.Time, error)

	// GetEntries returns the ledger rows of the given users at one
	// checkpoint timestamp.
	GetEntries(ctx context.Context, loc partition.Locator, at time.Time, userIDs []uuid.UUID) ([]models.OpeningBalance, error)

	// MergeUpsert inserts rows, adding amounts on (creation_date, user_id)
	// conflict.
	MergeUpsert(ctx context.Context, loc partition.Locator, entries []models.OpeningBalance) error

	// ApplyWinLoss shifts every checkpoint row at or after from by the
	// user's win/loss delta.
	ApplyWinLoss(ctx context.Context, loc partition.Locator, from time.Time, wlByUser map[uuid.UUID]int64) error
}

// DebtRepository is the commission-debt store contract.
type DebtRepository interface {
	// MergeUpsert inserts rows, adding debt_amount on (user_id, date)
	// conflict.
	MergeUpsert(ctx context.Context, loc partition.Locator, debts []models.CreditDebt) error
}

// BetRepository drains provider bet tables and resolves uplines.
type BetRepository interface {
	// FetchChunk returns up to limit settled bets older than cutoff.
	FetchChunk(ctx context.Context, provider models.GameProvider, cutoff time.Time, startDate *time.Time, limit int) ([]models.Bet, error)

	// DeleteByIDs removes drained bets from the provider's live table.
	DeleteByIDs(ctx context.Context, provider models.GameProvider, ids []uuid.UUID) error

	// GetUpline returns a user's reporting chain ordered from Owner down.
	GetUpline(ctx context.Context, userID uuid.UUID) ([]models.UplineUser, error)
}

// UserRepository pages over player accounts.
type UserRepository interface {
	// GetPlayerPage returns one page of activated players ordered by
	// registration time.
	GetPlayerPage(ctx context.Context, limit, offset int) ([]models.PlayerInfo, error)
}

// SystemLogRepository records durable run errors.
type SystemLogRepository interface {
	Record(ctx context.Context, description string, kind models.SystemLogKind) error
}

// ArchiveRepository feeds the downstream reporting archive.
type ArchiveRepository interface {
	// InsertBets copies drained bets into the flattened archive table.
	InsertBets(ctx context.Context, provider models.GameProvider, bets []models.Bet) error

	// StageDetails inserts enrichment results into the staging table.
	StageDetails(ctx context.Context, details []models.BetDetail) error

	// FlattenDetails copies staged detail columns into the flattened
	// archive and empties the staging table.
	FlattenDetails(ctx context.Context) error
}

// DetailFetcher looks up a human-readable detail payload or replay URL for a
// settled bet from its provider. Implementations are best-effort: any error
// simply means "no detail".
type DetailFetcher interface {
	FetchDetail(ctx context.Context, bet *models.Bet) (*models.BetDetail, error)
}

// DetailRegistry selects the detail fetcher for a provider, if one is
// configured.
type DetailRegistry interface {
	Fetcher(provider models.GameProvider) (DetailFetcher, bool)
}

// UnitOfWork bundles the transaction-scoped repositories for one bet chunk.
// All writes between Begin and Commit land atomically or not at all.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	BetRepository() BetRepository
	LedgerRepository() LedgerRepository
	DebtRepository() DebtRepository
}

// UnitOfWorkFactory creates units of work.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
