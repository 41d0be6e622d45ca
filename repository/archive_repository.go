package repository

import (
	"context"
	"fmt"
	"time"

	"archiver/database"
	"archiver/models"
)

// ArchiveRepository feeds the reporting archive (store B, MySQL): a flattened
// bet table for downstream reporting plus a staging table for provider detail
// lookups. The archive is an eventually-consistent sink; every write here is
// idempotent, and no transaction spans this store and the live store.
type ArchiveRepository struct {
	db *database.ArchiveDB
}

// NewArchiveRepository creates an archive repository.
func NewArchiveRepository(db *database.ArchiveDB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

type archivedBet struct {
	ID                      string     `db:"id"`
	Provider                string     `db:"provider"`
	CreationDate            time.Time  `db:"creation_date"`
	LastStatusChange        time.Time  `db:"last_status_change"`
	Stake                   int64      `db:"stake"`
	ValidAmount             *int64     `db:"valid_amount"`
	WinLoss                 *int64     `db:"wl"`
	UserID                  string     `db:"user_id"`
	Username                string     `db:"username"`
	Status                  string     `db:"status"`
	Currency                string     `db:"currency"`
	ProviderBetID           string     `db:"provider_bet_id"`
	ProviderGameVendorID    string     `db:"provider_game_vendor_id"`
	ProviderGameVendorLabel string     `db:"provider_game_vendor_label"`
	Details                 *string    `db:"details"`
	Replay                  *string    `db:"replay"`
}

// InsertBets copies drained bets into the flattened archive table. Re-running
// a chunk replays the same primary keys, so duplicates are ignored.
func (r *ArchiveRepository) InsertBets(ctx context.Context, provider models.GameProvider, bets []models.Bet) error {
	if len(bets) == 0 {
		return nil
	}

	rows := make([]archivedBet, 0, len(bets))
	for _, b := range bets {
		rows = append(rows, archivedBet{
			ID:                      b.ID.String(),
			Provider:                provider.String(),
			CreationDate:            b.CreationDate,
			LastStatusChange:        b.LastStatusChange,
			Stake:                   b.Stake,
			ValidAmount:             b.ValidAmount,
			WinLoss:                 b.WinLoss,
			UserID:                  b.UserID.String(),
			Username:                b.Username,
			Status:                  string(b.Status),
			Currency:                b.Currency,
			ProviderBetID:           b.ProviderBetID,
			ProviderGameVendorID:    b.ProviderGameVendorID,
			ProviderGameVendorLabel: b.ProviderGameVendorLabel,
			Details:                 b.Details,
			Replay:                  b.Replay,
		})
	}

	query := `
		INSERT IGNORE INTO bet_archive (
			id, provider, creation_date, last_status_change, stake, valid_amount, wl,
			user_id, username, status, currency,
			provider_bet_id, provider_game_vendor_id, provider_game_vendor_label,
			details, replay
		) VALUES (
			:id, :provider, :creation_date, :last_status_change, :stake, :valid_amount, :wl,
			:user_id, :username, :status, :currency,
			:provider_bet_id, :provider_game_vendor_id, :provider_game_vendor_label,
			:details, :replay
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to archive %d bets: %w", len(rows), err)
	}

	return nil
}

type stagedDetail struct {
	BetID   string  `db:"bet_id"`
	Details *string `db:"details"`
	Replay  *string `db:"replay"`
}

// StageDetails inserts enrichment results into the staging table.
func (r *ArchiveRepository) StageDetails(ctx context.Context, details []models.BetDetail) error {
	if len(details) == 0 {
		return nil
	}

	rows := make([]stagedDetail, 0, len(details))
	for _, d := range details {
		rows = append(rows, stagedDetail{
			BetID:   d.BetID.String(),
			Details: d.Details,
			Replay:  d.Replay,
		})
	}

	query := `
		INSERT INTO bet_detail_staging (bet_id, details, replay)
		VALUES (:bet_id, :details, :replay)
		ON DUPLICATE KEY UPDATE
			details = VALUES(details),
			replay = VALUES(replay)
	`

	if _, err := r.db.NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to stage %d bet details: %w", len(rows), err)
	}

	return nil
}

// FlattenDetails copies staged detail columns into the flattened archive and
// empties the staging table. Staged rows only ever overwrite NULL columns, so
// replaying the copy is harmless.
func (r *ArchiveRepository) FlattenDetails(ctx context.Context) error {
	merge := `
		UPDATE bet_archive a
		JOIN bet_detail_staging s ON s.bet_id = a.id
		SET a.details = COALESCE(s.details, a.details),
		    a.replay = COALESCE(s.replay, a.replay)
	`
	if _, err := r.db.ExecContext(ctx, merge); err != nil {
		return fmt.Errorf("failed to flatten staged bet details: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `TRUNCATE TABLE bet_detail_staging`); err != nil {
		return fmt.Errorf("failed to truncate detail staging table: %w", err)
	}

	return nil
}
