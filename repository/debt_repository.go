package repository

import (
	"context"
	"fmt"
	"strings"

	"archiver/database"
	"archiver/models"
	"archiver/partition"
)

// DebtRepository writes commission-debt rows into the monthly credit_debt
// partitions.
type DebtRepository struct {
	q queryable
}

// NewDebtRepository creates a debt repository backed by the pool.
func NewDebtRepository(db *database.DB) *DebtRepository {
	return &DebtRepository{q: db.Pool}
}

// NewDebtRepositoryWithTx creates a debt repository bound to a transaction.
func NewDebtRepositoryWithTx(tx queryable) *DebtRepository {
	return &DebtRepository{q: tx}
}

// MergeUpsert inserts debt rows, adding to debt_amount when a (user_id, date)
// row already exists in the partition. Currency and username are written on
// first insert and left untouched on conflict.
func (r *DebtRepository) MergeUpsert(ctx context.Context, loc partition.Locator, debts []models.CreditDebt) error {
	if len(debts) == 0 {
		return nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s.%s AS t (id, user_id, username, currency, date, debt_amount) VALUES ", loc.Schema, loc.Table)

	args := make([]any, 0, len(debts)*6)
	for i, d := range debts {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6)
		args = append(args, d.ID, d.UserID, d.Username, d.Currency, d.Date, d.DebtAmount)
	}
	sb.WriteString(" ON CONFLICT (user_id, date) DO UPDATE SET debt_amount = t.debt_amount + EXCLUDED.debt_amount")

	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to upsert %d debt entries into %s: %w", len(debts), loc, err)
	}

	return nil
}
