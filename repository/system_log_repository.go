package repository

import (
	"context"
	"fmt"
	"time"

	"archiver/database"
	"archiver/models"
)

// SystemLogRepository writes durable run errors to the live store. A batch
// job has no interactive surface, so system_log is where operators look.
type SystemLogRepository struct {
	q queryable
}

// NewSystemLogRepository creates a system log repository backed by the pool.
func NewSystemLogRepository(db *database.DB) *SystemLogRepository {
	return &SystemLogRepository{q: db.Pool}
}

// Record inserts one log entry.
func (r *SystemLogRepository) Record(ctx context.Context, description string, kind models.SystemLogKind) error {
	query := `
		INSERT INTO public.system_log (description, date, kind)
		VALUES ($1, $2, $3)
	`

	if _, err := r.q.Exec(ctx, query, description, time.Now().UTC(), kind); err != nil {
		return fmt.Errorf("failed to record system log entry: %w", err)
	}

	return nil
}
