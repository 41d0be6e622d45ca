package service

import (
	"context"
	"time"

	"archiver/models"

	log "github.com/sirupsen/logrus"
)

// ArchiverService is the single entry point of a settlement pass: roll the
// ledger forward, then drain every provider's bet table chunk by chunk. One
// invocation is one logical run with one shared RunState.
type ArchiverService struct {
	rollforward *RollforwardService
	settlement  *SettlementService
	bets        BetRepository
	uowFactory  UnitOfWorkFactory
	chunkSize   int
}

// NewArchiverService creates an archiver service.
func NewArchiverService(rollforward *RollforwardService, settlement *SettlementService, bets BetRepository, uowFactory UnitOfWorkFactory, chunkSize int) *ArchiverService {
	return &ArchiverService{
		rollforward: rollforward,
		settlement:  settlement,
		bets:        bets,
		uowFactory:  uowFactory,
		chunkSize:   chunkSize,
	}
}

// Run executes one settlement pass. Any error aborts the run; chunks already
// committed stay committed, and the next scheduled run resumes from whatever
// is left in the bet tables.
func (s *ArchiverService) Run(ctx context.Context) error {
	state := NewRunState()

	if err := s.rollforward.Run(ctx, state); err != nil {
		return err
	}

	// Only bets whose status settled before yesterday's cutoff are drained;
	// anything newer may still be adjusted by the platform.
	cutoff := CutoffTime(Today().AddDate(0, 0, -1))

	for _, provider := range models.AllProviders() {
		if err := s.drainProvider(ctx, provider, cutoff, state); err != nil {
			return err
		}
	}

	return nil
}

func (s *ArchiverService) drainProvider(ctx context.Context, provider models.GameProvider, cutoff time.Time, state *RunState) error {
	total := 0

	for {
		bets, err := s.bets.FetchChunk(ctx, provider, cutoff, nil, s.chunkSize)
		if err != nil {
			return err
		}
		if len(bets) == 0 {
			break
		}

		if err := s.settleChunk(ctx, provider, bets, state); err != nil {
			return err
		}
		total += len(bets)
	}

	if total > 0 {
		log.WithFields(log.Fields{
			"provider": provider,
			"bets":     total,
		}).Info("provider drained")
	}

	return nil
}

func (s *ArchiverService) settleChunk(ctx context.Context, provider models.GameProvider, bets []models.Bet, state *RunState) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := s.settlement.ProcessChunk(ctx, provider, bets, state, uow); err != nil {
		return err
	}

	return uow.Commit()
}
