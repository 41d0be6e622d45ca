package service

import (
	"context"
	"fmt"
	"time"

	"archiver/models"
	"archiver/partition"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// currencyAmount is one upline member's accumulated commission for one
// settlement day. The currency is fixed by the first contributing bet; a
// later bet in a different currency is an upstream data fault, not something
// to aggregate over.
type currencyAmount struct {
	currency string
	amount   int64
}

type debtsByDay map[time.Time]map[uuid.UUID]*currencyAmount

// SettlementService turns a chunk of settled bets into commission-debt rows,
// win/loss ledger adjustments, archive copies and deletions, all committed
// through one unit of work.
type SettlementService struct {
	archive ArchiveRepository
	details DetailRegistry
}

// NewSettlementService creates a settlement service.
func NewSettlementService(archive ArchiveRepository, details DetailRegistry) *SettlementService {
	return &SettlementService{
		archive: archive,
		details: details,
	}
}

// ProcessChunk settles one chunk of bets inside the given (already begun)
// unit of work. Archive writes go to the downstream store outside the
// transaction; they are idempotent, so a rolled-back chunk replays them
// safely on the next run.
func (s *SettlementService) ProcessChunk(ctx context.Context, provider models.GameProvider, bets []models.Bet, state *RunState, uow UnitOfWork) error {
	betIDs := make([]uuid.UUID, 0, len(bets))
	debts := make(debtsByDay)
	wlByDayByUser := make(map[time.Time]map[uuid.UUID]int64)
	var details []models.BetDetail

	for i := range bets {
		bet := &bets[i]
		betIDs = append(betIDs, bet.ID)
		state.MemoUsername(bet.UserID, bet.Username)

		if _, ok := state.Upline(bet.UserID); !ok {
			upline, err := uow.BetRepository().GetUpline(ctx, bet.UserID)
			if err != nil {
				return err
			}
			state.SetUpline(bet.UserID, upline)
		}

		day := SettlementDay(bet.LastStatusChange)

		wlByUser, ok := wlByDayByUser[day]
		if !ok {
			wlByUser = make(map[uuid.UUID]int64)
			wlByDayByUser[day] = wlByUser
		}
		wlByUser[bet.UserID] += bet.WL()

		if state.IsCreditPlayer(bet.UserID) {
			bucket, ok := debts[day]
			if !ok {
				bucket = make(map[uuid.UUID]*currencyAmount)
				debts[day] = bucket
			}
			if err := calculateDebtByBet(bet, bucket, state); err != nil {
				return err
			}
		}

		if detail := s.fetchDetail(ctx, provider, bet); detail != nil {
			details = append(details, *detail)
		}
	}

	if err := s.archive.InsertBets(ctx, provider, bets); err != nil {
		return err
	}
	if len(details) > 0 {
		if err := s.archive.StageDetails(ctx, details); err != nil {
			return err
		}
		if err := s.archive.FlattenDetails(ctx); err != nil {
			return err
		}
	}

	debtRows, err := materializeDebts(debts, state)
	if err != nil {
		return err
	}

	return saveAll(ctx, uow, provider, debtRows, betIDs, wlByDayByUser)
}

// fetchDetail is strictly best-effort: a provider outage or a bet the
// provider no longer knows must never fail settlement.
func (s *SettlementService) fetchDetail(ctx context.Context, provider models.GameProvider, bet *models.Bet) *models.BetDetail {
	fetcher, ok := s.details.Fetcher(provider)
	if !ok {
		return nil
	}

	detail, err := fetcher.FetchDetail(ctx, bet)
	if err != nil {
		log.WithFields(log.Fields{
			"provider": provider,
			"bet_id":   bet.ID,
		}).WithError(err).Debug("bet detail lookup failed, archiving without detail")
		return nil
	}
	return detail
}

// calculateDebtByBet distributes one credit player's bet across its upline,
// accumulating commission_amount[rank] + funds_delta[rank] per ancestor into
// the day's bucket.
func calculateDebtByBet(bet *models.Bet, bucket map[uuid.UUID]*currencyAmount, state *RunState) error {
	upline, ok := state.Upline(bet.UserID)
	if !ok {
		return fmt.Errorf("upline not resolved for user %s", bet.UserID)
	}

	if len(bet.CommissionAmount) != models.PositionCount {
		return fmt.Errorf("commission_amount has %d values instead of %d for bet %s", len(bet.CommissionAmount), models.PositionCount, bet.ID)
	}
	if len(bet.FundsDelta) != models.PositionCount {
		return fmt.Errorf("funds_delta has %d values instead of %d for bet %s", len(bet.FundsDelta), models.PositionCount, bet.ID)
	}

	for _, ancestor := range upline {
		state.MemoUsername(ancestor.ID, ancestor.Username)

		if !ancestor.Position.Valid() {
			return fmt.Errorf("upline user %s has invalid position %d", ancestor.ID, ancestor.Position)
		}

		contribution := bet.CommissionAmount[ancestor.Position] + bet.FundsDelta[ancestor.Position]

		if existing, ok := bucket[ancestor.ID]; ok {
			if existing.currency != bet.Currency {
				return fmt.Errorf("mixed currencies %s and %s for user %s on one settlement day (bet %s)", existing.currency, bet.Currency, ancestor.ID, bet.ID)
			}
			existing.amount += contribution
		} else {
			bucket[ancestor.ID] = &currencyAmount{
				currency: bet.Currency,
				amount:   contribution,
			}
		}
	}

	return nil
}

// materializeDebts turns the accumulated buckets into concrete debt rows.
// Every contributing user's username must have been seen during the run.
func materializeDebts(debts debtsByDay, state *RunState) (map[time.Time][]models.CreditDebt, error) {
	result := make(map[time.Time][]models.CreditDebt, len(debts))

	for day, bucket := range debts {
		rows := make([]models.CreditDebt, 0, len(bucket))
		for userID, debt := range bucket {
			username, ok := state.Username(userID)
			if !ok {
				return nil, fmt.Errorf("username was not found for user %s", userID)
			}
			rows = append(rows, models.CreditDebt{
				ID:         uuid.New(),
				UserID:     userID,
				Username:   username,
				Currency:   debt.currency,
				Date:       CutoffTime(day),
				DebtAmount: debt.amount,
			})
		}
		result[day] = rows
	}

	return result, nil
}

// saveAll persists one chunk's effects inside the unit of work: debt upserts
// per settlement day, deletion of the drained bets, and the win/loss
// carry-forward. A settlement day's win/loss shifts the user's balance in
// every month partition from the settlement month through the current month,
// because each month's opening rows carry the running balance forward.
func saveAll(ctx context.Context, uow UnitOfWork, provider models.GameProvider, debtRows map[time.Time][]models.CreditDebt, betIDs []uuid.UUID, wlByDayByUser map[time.Time]map[uuid.UUID]int64) error {
	for day, rows := range debtRows {
		loc, err := partition.For(partition.CreditDebt, day)
		if err != nil {
			return err
		}
		if err := uow.DebtRepository().MergeUpsert(ctx, loc, rows); err != nil {
			return err
		}
	}

	if err := uow.BetRepository().DeleteByIDs(ctx, provider, betIDs); err != nil {
		return err
	}

	currentMonth := StartOfMonth(Today())

	for day, wlByUser := range wlByDayByUser {
		for month := StartOfMonth(day); !month.After(currentMonth); month = AddMonth(month) {
			loc, err := partition.For(partition.OpeningBalance, month)
			if err != nil {
				return err
			}
			if err := uow.LedgerRepository().ApplyWinLoss(ctx, loc, CutoffTime(day), wlByUser); err != nil {
				return err
			}
		}
	}

	return nil
}
