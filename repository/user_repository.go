package repository

import (
	"context"
	"fmt"

	"archiver/database"
	"archiver/models"
)

// UserRepository pages over player accounts for the rollforward engine.
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a user repository backed by the pool.
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// NewUserRepositoryWithTx creates a user repository bound to a transaction.
func NewUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

// GetPlayerPage returns one page of activated player accounts ordered by
// registration time, flagging each as credit when its credit limit is
// positive.
func (r *UserRepository) GetPlayerPage(ctx context.Context, limit, offset int) ([]models.PlayerInfo, error) {
	query := `
		SELECT u.id AS user_id, b.credit > 0 AS is_credit
		FROM public."user" u
		JOIN public.balance b ON b.user_id = u.id
		WHERE u.position = $1 AND u.activated_at IS NOT NULL
		ORDER BY u.registered_at
		LIMIT $2 OFFSET $3
	`

	rows, err := r.q.Query(ctx, query, models.PositionPlayer, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch a page of players: %w", err)
	}
	defer rows.Close()

	var players []models.PlayerInfo
	for rows.Next() {
		var p models.PlayerInfo
		if err := rows.Scan(&p.UserID, &p.IsCredit); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	return players, nil
}
