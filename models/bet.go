package models

import (
	"time"

	"github.com/google/uuid"
)

// BetStatus is the lifecycle status of a bet as stored by the betting platform
type BetStatus string

const (
	BetStatusActive    BetStatus = "ACTIVE"
	BetStatusPending   BetStatus = "PENDING"
	BetStatusClosed    BetStatus = "CLOSED"
	BetStatusCancelled BetStatus = "CANCELLED"
	BetStatusSuspended BetStatus = "SUSPENDED"
	BetStatusVoid      BetStatus = "VOID"
)

// Bet represents a settled wager row drained from a provider bet table.
// The four per-position slices are always PositionCount elements long,
// indexed by hierarchy position (Owner..Player). Amounts are signed
// integers in minor currency units.
type Bet struct {
	ID                      uuid.UUID `db:"id"`
	CreationDate            time.Time `db:"creation_date"`
	LastStatusChange        time.Time `db:"last_status_change"`
	Stake                   int64     `db:"stake"`
	ValidAmount             *int64    `db:"valid_amount"`
	WinLoss                 *int64    `db:"wl"`
	UserID                  uuid.UUID `db:"user_id"`
	Username                string    `db:"username"`
	IP                      string    `db:"ip"`
	Status                  BetStatus `db:"status"`
	Currency                string    `db:"currency"`
	PTByPosition            []int64   `db:"pt_by_position"`
	CommissionPercent       []int64   `db:"commission_percent"`
	CommissionAmount        []int64   `db:"commission_amount"`
	FundsDelta              []int64   `db:"funds_delta"`
	Details                 *string   `db:"details"`
	Replay                  *string   `db:"replay"`
	TransactionIDs          []string  `db:"transaction_ids"`
	Transactions            []string  `db:"transactions"`
	ProviderBetID           string    `db:"provider_bet_id"`
	ProviderGameVendorID    string    `db:"provider_game_vendor_id"`
	ProviderGameVendorLabel string    `db:"provider_game_vendor_label"`
}

// WL returns the bet's win/loss amount, zero when the platform never settled one.
func (b *Bet) WL() int64 {
	if b.WinLoss == nil {
		return 0
	}
	return *b.WinLoss
}

// BetDetail is a best-effort enrichment result for one bet: a provider-side
// detail payload and/or a replay URL. Either field may be empty.
type BetDetail struct {
	BetID   uuid.UUID `db:"bet_id"`
	Details *string   `db:"details"`
	Replay  *string   `db:"replay"`
}
