package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"archiver/models"
	"archiver/partition"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// ProvisionPartition creates the archive schema and partition table for an
// entity and month. In production these are provisioned by the platform's
// operations tooling; tests create exactly the months they touch.
func ProvisionPartition(t *testing.T, db *TestDatabase, entity partition.Entity, date time.Time) partition.Locator {
	t.Helper()
	ctx := context.Background()

	loc, err := partition.For(entity, date)
	require.NoError(t, err)

	_, err = db.DB.Pool.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, loc.Schema))
	require.NoError(t, err)

	var ddl string
	switch entity {
	case partition.OpeningBalance:
		ddl = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				amount BIGINT NOT NULL,
				creation_date TIMESTAMPTZ NOT NULL,
				user_id UUID NOT NULL,
				UNIQUE (creation_date, user_id)
			)`, loc)
	case partition.CreditDebt:
		ddl = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				user_id UUID NOT NULL,
				username TEXT NOT NULL,
				currency TEXT NOT NULL,
				date TIMESTAMPTZ NOT NULL,
				debt_amount BIGINT NOT NULL,
				UNIQUE (user_id, date)
			)`, loc)
	default:
		t.Fatalf("unknown partition entity %q", entity)
	}

	_, err = db.DB.Pool.Exec(ctx, ddl)
	require.NoError(t, err)

	return loc
}

// CreateBetTable creates the live bet table for a provider.
func CreateBetTable(t *testing.T, db *TestDatabase, provider models.GameProvider) {
	t.Helper()

	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS public.%s (
			id UUID PRIMARY KEY,
			creation_date TIMESTAMPTZ NOT NULL,
			last_status_change TIMESTAMPTZ NOT NULL,
			stake BIGINT NOT NULL,
			valid_amount BIGINT,
			wl BIGINT,
			user_id UUID NOT NULL,
			username TEXT NOT NULL,
			ip TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			currency TEXT NOT NULL,
			pt_by_position BIGINT[] NOT NULL,
			commission_percent BIGINT[] NOT NULL,
			commission_amount BIGINT[] NOT NULL,
			funds_delta BIGINT[] NOT NULL,
			details TEXT,
			replay TEXT,
			transaction_ids TEXT[] NOT NULL DEFAULT '{}',
			transactions TEXT[] NOT NULL DEFAULT '{}',
			provider_bet_id TEXT NOT NULL,
			provider_game_vendor_id TEXT NOT NULL,
			provider_game_vendor_label TEXT NOT NULL DEFAULT ''
		)`, provider.BetTable())

	_, err := db.DB.Pool.Exec(context.Background(), ddl)
	require.NoError(t, err)
}

// InsertBet writes one bet row into a provider's live table.
func InsertBet(t *testing.T, db *TestDatabase, provider models.GameProvider, bet *models.Bet) {
	t.Helper()

	query := fmt.Sprintf(`
		INSERT INTO public.%s (
			id, creation_date, last_status_change, stake, valid_amount, wl,
			user_id, username, ip, status, currency,
			pt_by_position, commission_percent, commission_amount, funds_delta,
			details, replay, transaction_ids, transactions,
			provider_bet_id, provider_game_vendor_id, provider_game_vendor_label
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
		)`, provider.BetTable())

	_, err := db.DB.Pool.Exec(context.Background(), query,
		bet.ID, bet.CreationDate, bet.LastStatusChange, bet.Stake, bet.ValidAmount, bet.WinLoss,
		bet.UserID, bet.Username, bet.IP, bet.Status, bet.Currency,
		bet.PTByPosition, bet.CommissionPercent, bet.CommissionAmount, bet.FundsDelta,
		bet.Details, bet.Replay, bet.TransactionIDs, bet.Transactions,
		bet.ProviderBetID, bet.ProviderGameVendorID, bet.ProviderGameVendorLabel,
	)
	require.NoError(t, err)
}

// CreateTestBet builds a settled bet with sane defaults.
func CreateTestBet(userID uuid.UUID, username string, settledAt time.Time) *models.Bet {
	return &models.Bet{
		ID:                   uuid.New(),
		CreationDate:         settledAt.Add(-time.Hour),
		LastStatusChange:     settledAt,
		Stake:                1000,
		UserID:               userID,
		Username:             username,
		IP:                   "10.0.0.1",
		Status:               models.BetStatusClosed,
		Currency:             "THB",
		PTByPosition:         make([]int64, models.PositionCount),
		CommissionPercent:    make([]int64, models.PositionCount),
		CommissionAmount:     make([]int64, models.PositionCount),
		FundsDelta:           make([]int64, models.PositionCount),
		TransactionIDs:       []string{},
		Transactions:         []string{},
		ProviderBetID:        uuid.NewString(),
		ProviderGameVendorID: "game-1",
	}
}

// InsertUser creates a user row, optionally activated.
func InsertUser(t *testing.T, db *TestDatabase, id uuid.UUID, username string, position models.Position, activated bool) {
	t.Helper()

	var activatedAt *time.Time
	if activated {
		now := time.Now().UTC()
		activatedAt = &now
	}

	_, err := db.DB.Pool.Exec(context.Background(), `
		INSERT INTO public."user" (id, username, position, activated_at)
		VALUES ($1, $2, $3, $4)
	`, id, username, position, activatedAt)
	require.NoError(t, err)
}

// InsertUpline stores a player's materialized ancestor chain.
func InsertUpline(t *testing.T, db *TestDatabase, userID uuid.UUID, uplineIDs []uuid.UUID) {
	t.Helper()

	_, err := db.DB.Pool.Exec(context.Background(), `
		INSERT INTO public.user_upline (user_id, upline_ids) VALUES ($1, $2)
	`, userID, uplineIDs)
	require.NoError(t, err)
}

// InsertBalance creates a balance row; a positive credit marks the player as
// settling on credit.
func InsertBalance(t *testing.T, db *TestDatabase, userID uuid.UUID, amount, credit int64) {
	t.Helper()

	_, err := db.DB.Pool.Exec(context.Background(), `
		INSERT INTO public.balance (user_id, amount, credit) VALUES ($1, $2, $3)
	`, userID, amount, credit)
	require.NoError(t, err)
}
