package repository

import (
	"context"
	"fmt"

	"archiver/database"
	"archiver/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements service.UnitOfWork: one chunk transaction plus the
// repositories bound to it.
type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context

	betRepo    service.BetRepository
	ledgerRepo service.LedgerRepository
	debtRepo   service.DebtRepository
}

type unitOfWorkFactory struct {
	db *database.DB
}

// NewUnitOfWorkFactory creates a UnitOfWork factory over the live store.
func NewUnitOfWorkFactory(db *database.DB) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{db: f.db}
}

// Begin starts the transaction and binds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx
	u.betRepo = NewBetRepositoryWithTx(tx)
	u.ledgerRepo = NewLedgerRepositoryWithTx(tx)
	u.debtRepo = NewDebtRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction.
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	return nil
}

// Rollback aborts the transaction. Rolling back after a successful commit is
// a no-op, so callers can defer it unconditionally.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

func (u *unitOfWork) BetRepository() service.BetRepository {
	return u.betRepo
}

func (u *unitOfWork) LedgerRepository() service.LedgerRepository {
	return u.ledgerRepo
}

func (u *unitOfWork) DebtRepository() service.DebtRepository {
	return u.debtRepo
}
