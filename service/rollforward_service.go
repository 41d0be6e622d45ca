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

// RollforwardService advances the opening-balance ledger to tomorrow before
// any settlement runs, and discovers which players settle on credit along
// the way.
type RollforwardService struct {
	users    UserRepository
	ledger   LedgerRepository
	pageSize int
}

// NewRollforwardService creates a rollforward service.
func NewRollforwardService(users UserRepository, ledger LedgerRepository, pageSize int) *RollforwardService {
	return &RollforwardService{
		users:    users,
		ledger:   ledger,
		pageSize: pageSize,
	}
}

// Run brings the ledger current through tomorrow's cutoff. It is re-entrant:
// once today's invocation has landed, a second call is a no-op. Pages already
// advanced are not rolled back when a later page fails; the additive upserts
// make a retried page harmless.
func (s *RollforwardService) Run(ctx context.Context, state *RunState) error {
	lastCheckpoint, err := s.findLastCheckpoint(ctx)
	if err != nil {
		return err
	}

	tomorrow := Tomorrow()
	if !lastCheckpoint.Before(tomorrow) {
		// Already executed today.
		log.WithField("checkpoint", lastCheckpoint.Format("2006-01-02")).
			Info("ledger already current, skipping rollforward")
		return nil
	}

	log.WithFields(log.Fields{
		"checkpoint": lastCheckpoint.Format("2006-01-02"),
		"through":    tomorrow.Format("2006-01-02"),
	}).Info("rolling ledger forward")

	checkpointLoc, err := partition.For(partition.OpeningBalance, lastCheckpoint)
	if err != nil {
		return err
	}

	offset := 0
	for {
		page, err := s.users.GetPlayerPage(ctx, s.pageSize, offset)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}

		userIDs := make([]uuid.UUID, 0, len(page))
		for _, p := range page {
			userIDs = append(userIDs, p.UserID)
			if p.IsCredit {
				state.AddCreditPlayer(p.UserID)
			}
		}

		entries, err := s.ledger.GetEntries(ctx, checkpointLoc, CutoffTime(lastCheckpoint), userIDs)
		if err != nil {
			return err
		}

		if err := s.carryForward(ctx, entries, lastCheckpoint, tomorrow); err != nil {
			return err
		}

		if len(page) < s.pageSize {
			break
		}
		offset += s.pageSize
	}

	return nil
}

// carryForward writes one ledger row per user per day from the day after the
// checkpoint through tomorrow, copying the checkpoint amount with a fresh id.
func (s *RollforwardService) carryForward(ctx context.Context, entries []models.OpeningBalance, lastCheckpoint, tomorrow time.Time) error {
	if len(entries) == 0 {
		return nil
	}

	for day := lastCheckpoint.AddDate(0, 0, 1); !day.After(tomorrow); day = day.AddDate(0, 0, 1) {
		loc, err := partition.For(partition.OpeningBalance, day)
		if err != nil {
			return err
		}

		fresh := make([]models.OpeningBalance, 0, len(entries))
		for _, e := range entries {
			fresh = append(fresh, models.OpeningBalance{
				ID:           uuid.New(),
				Amount:       e.Amount,
				CreationDate: CutoffTime(day),
				UserID:       e.UserID,
			})
		}

		if err := s.ledger.MergeUpsert(ctx, loc, fresh); err != nil {
			return err
		}
	}

	return nil
}

// findLastCheckpoint walks backward month by month from today until a ledger
// partition yields a checkpoint. Reaching the historical floor means the
// partitions were never provisioned, which no retry will fix.
func (s *RollforwardService) findLastCheckpoint(ctx context.Context) (time.Time, error) {
	current := Today()

	for {
		if current.Year() == partition.MinYear {
			return time.Time{}, fmt.Errorf("no opening balance records exist after the %d floor", partition.MinYear)
		}

		loc, err := partition.For(partition.OpeningBalance, current)
		if err != nil {
			return time.Time{}, err
		}

		latest, err := s.ledger.LatestCheckpoint(ctx, loc)
		if err != nil {
			return time.Time{}, err
		}
		if latest != nil {
			return Day(*latest), nil
		}

		current = SubtractMonth(current)
	}
}
