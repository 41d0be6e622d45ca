package repository

import (
	"context"
	"fmt"
	"time"

	"archiver/database"
	"archiver/models"

	"github.com/google/uuid"
)

// BetRepository drains settled bets from the per-provider live bet tables
// and resolves reporting hierarchies. Table names derive from the closed
// provider enum only.
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a bet repository backed by the pool.
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// NewBetRepositoryWithTx creates a bet repository bound to a transaction.
func NewBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

const betColumns = `
	id,
	creation_date,
	last_status_change,
	stake,
	valid_amount,
	wl,
	user_id,
	username,
	ip,
	status,
	currency,
	pt_by_position,
	commission_percent,
	commission_amount,
	funds_delta,
	details,
	replay,
	transaction_ids,
	transactions,
	provider_bet_id,
	provider_game_vendor_id,
	provider_game_vendor_label`

// FetchChunk returns up to limit settled bets from the provider's table whose
// last status change predates cutoff. Bets still Active or Pending are never
// eligible. When startDate is non-nil only bets changed after it are
// returned.
func (r *BetRepository) FetchChunk(ctx context.Context, provider models.GameProvider, cutoff time.Time, startDate *time.Time, limit int) ([]models.Bet, error) {
	table := provider.BetTable()

	where := "last_status_change < $3"
	args := []any{models.BetStatusActive, models.BetStatusPending, cutoff}
	if startDate != nil {
		where += " AND last_status_change > $4"
		args = append(args, *startDate)
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM public.%s
		WHERE status NOT IN ($1, $2) AND (%s)
		ORDER BY last_status_change
		LIMIT $%d
	`, betColumns, table, where, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bet chunk from '%s': %w", table, err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		var b models.Bet
		err := rows.Scan(
			&b.ID,
			&b.CreationDate,
			&b.LastStatusChange,
			&b.Stake,
			&b.ValidAmount,
			&b.WinLoss,
			&b.UserID,
			&b.Username,
			&b.IP,
			&b.Status,
			&b.Currency,
			&b.PTByPosition,
			&b.CommissionPercent,
			&b.CommissionAmount,
			&b.FundsDelta,
			&b.Details,
			&b.Replay,
			&b.TransactionIDs,
			&b.Transactions,
			&b.ProviderBetID,
			&b.ProviderGameVendorID,
			&b.ProviderGameVendorLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet from '%s': %w", table, err)
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets from '%s': %w", table, err)
	}

	return bets, nil
}

// DeleteByIDs removes drained bets from the provider's live table.
func (r *BetRepository) DeleteByIDs(ctx context.Context, provider models.GameProvider, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	table := provider.BetTable()
	query := fmt.Sprintf(`DELETE FROM public.%s WHERE id = ANY($1)`, table)

	tag, err := r.q.Exec(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to delete %d bets from '%s': %w", len(ids), table, err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("deleted %d of %d bets from '%s'", tag.RowsAffected(), len(ids), table)
	}

	return nil
}

// GetUpline returns a user's materialized reporting chain ordered from Owner
// down. Absent ranks are simply missing from the result.
func (r *BetRepository) GetUpline(ctx context.Context, userID uuid.UUID) ([]models.UplineUser, error) {
	query := `
		SELECT u.id, u.username, u.position
		FROM public.user_upline uu
		JOIN public."user" u ON u.id = ANY(uu.upline_ids)
		WHERE uu.user_id = $1
		ORDER BY u.position
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch upline for user %s: %w", userID, err)
	}
	defer rows.Close()

	var upline []models.UplineUser
	for rows.Next() {
		var u models.UplineUser
		if err := rows.Scan(&u.ID, &u.Username, &u.Position); err != nil {
			return nil, fmt.Errorf("failed to scan upline user: %w", err)
		}
		upline = append(upline, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate upline for user %s: %w", userID, err)
	}

	return upline, nil
}
