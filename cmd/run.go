package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"archiver/config"
	"archiver/connectors"
	"archiver/database"
	"archiver/models"
	"archiver/repository"
	"archiver/service"
)

// Run wires the stores, connectors and services together and executes one
// archiving pass. Failures are mirrored into the system log before
// returning so operators see them without shell access.
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("Connecting to live database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to live database: %w", err)
	}
	defer db.Close()

	log.Info("Connecting to archive database...")
	archiveDB, err := database.NewArchiveConnection(cfg.ArchiveDatabaseURL, cfg.ArchiveDatabaseMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to archive database: %w", err)
	}
	defer archiveDB.Close()

	systemLogs := repository.NewSystemLogRepository(db)

	providerConfigs, err := repository.NewProviderConfigRepository(db).GetAll(ctx)
	if err != nil {
		return reportFailure(ctx, systemLogs, fmt.Errorf("failed to load provider configs: %w", err))
	}

	registry, err := connectors.Load(providerConfigs, time.Duration(cfg.ProviderTimeoutSeconds)*time.Second)
	if err != nil {
		return reportFailure(ctx, systemLogs, err)
	}

	rollforward := service.NewRollforwardService(
		repository.NewUserRepository(db),
		repository.NewLedgerRepository(db),
		cfg.PlayersPageSize,
	)
	settlement := service.NewSettlementService(repository.NewArchiveRepository(archiveDB), registry)
	archiver := service.NewArchiverService(
		rollforward,
		settlement,
		repository.NewBetRepository(db),
		repository.NewUnitOfWorkFactory(db),
		cfg.BetChunkSize,
	)

	started := time.Now()
	if err := archiver.Run(ctx); err != nil {
		return reportFailure(ctx, systemLogs, err)
	}

	log.WithField("elapsed", time.Since(started)).Info("archiving run completed")
	return nil
}

// reportFailure records the error in the system log table so that failed
// runs surface in the back office, then hands the error back for exit
// handling. Recording uses a fresh context since the run context may
// already be cancelled.
func reportFailure(ctx context.Context, systemLogs *repository.SystemLogRepository, runErr error) error {
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := systemLogs.Record(logCtx, runErr.Error(), models.SystemLogError); err != nil {
		log.WithError(err).Error("failed to record run failure in system log")
	}
	return runErr
}
